package service

import (
	"cloud-drive-server/config"
	"cloud-drive-server/internal/apperrors"
	"cloud-drive-server/internal/model"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/util"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"io"
	"log"
	"strings"
)

const defaultRecentLimit = 10

type FileService struct {
	fileRepository   ports.FileRepository
	folderRepository ports.FolderRepository
	cacheRepository  ports.CacheRepository
	blobStorage      ports.BlobStorage
	gate             ports.AccessGate
	db               *config.Database
	maxUploadSize    int64
	shareBaseURL     string
	shareTokenLength int
}

func NewFileService(
	fileRepository ports.FileRepository,
	folderRepository ports.FolderRepository,
	cacheRepository ports.CacheRepository,
	blobStorage ports.BlobStorage,
	gate ports.AccessGate,
	db *config.Database,
	uploadCfg *config.UploadConfig,
	shareCfg *config.ShareConfig,
) *FileService {
	return &FileService{
		fileRepository:   fileRepository,
		folderRepository: folderRepository,
		cacheRepository:  cacheRepository,
		blobStorage:      blobStorage,
		gate:             gate,
		db:               db,
		maxUploadSize:    uploadCfg.MaxSizeBytes,
		shareBaseURL:     strings.TrimRight(shareCfg.PublicBaseURL, "/"),
		shareTokenLength: shareCfg.TokenLength,
	}
}

// ListFiles : файлы вызывающего в папке (nil — верхний уровень), свежие первыми
func (s *FileService) ListFiles(ctx context.Context, claims *security.Claims, folderUUID *string) ([]model.File, error) {
	user, err := s.gate.ResolveUser(ctx, s.db, claims)
	if err != nil {
		return nil, err
	}

	return s.fileRepository.ListByOwner(ctx, s.db, user.UUID, folderUUID)
}

// ListRecentFiles : limit последних обновлённых файлов вызывающего (по умолчанию 10)
func (s *FileService) ListRecentFiles(ctx context.Context, claims *security.Claims, limit int) ([]model.File, error) {
	user, err := s.gate.ResolveUser(ctx, s.db, claims)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultRecentLimit
	}

	return s.fileRepository.ListRecent(ctx, s.db, user.UUID, limit)
}

// Upload : сначала байты в хранилище, затем строка каталога.
// Сбой вставки после записи блоба оставляет осиротевший объект — он логируется,
// но не зачищается (принятая политика, обратное никогда не случается из этого пути).
func (s *FileService) Upload(ctx context.Context, claims *security.Claims, originalName string, mimeType string, folderUUID *string, content io.Reader) (*model.File, error) {
	user, err := s.gate.ResolveUser(ctx, s.db, claims)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(originalName) == "" {
		return nil, fmt.Errorf("[FileService] пустое имя файла: %w", apperrors.ErrValidation)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	if folderUUID != nil {
		folder, err := s.folderRepository.GetByUUID(ctx, s.db, *folderUUID)
		if err != nil {
			return nil, err
		}
		if folder.OwnerUUID != user.UUID {
			return nil, fmt.Errorf("[FileService] папка принадлежит другому пользователю: %w", apperrors.ErrForbidden)
		}
	}

	// +1 байт, чтобы отличить файл ровно в лимит от превысившего его:
	// лишнее в хранилище не пишется, поток дальше лимита не вычитывается
	stored, err := s.blobStorage.Put(ctx, io.LimitReader(content, s.maxUploadSize+1), originalName)
	if err != nil {
		return nil, util.LogError("[FileService] не удалось записать содержимое в хранилище", err)
	}

	if stored.SizeBytes > s.maxUploadSize {
		if err := s.blobStorage.Delete(ctx, stored.Path); err != nil {
			log.Printf("[FileService] не удалось удалить превысивший лимит объект %s: %v", stored.Path, err)
		}
		return nil, fmt.Errorf("[FileService] файл превышает лимит %d байт: %w", s.maxUploadSize, apperrors.ErrValidation)
	}

	file := &model.File{
		UUID:         uuid.New().String(),
		StorageName:  stored.Name,
		OriginalName: originalName,
		MimeType:     mimeType,
		SizeBytes:    stored.SizeBytes,
		StoragePath:  stored.Path,
		OwnerUUID:    user.UUID,
		FolderUUID:   folderUUID,
	}

	created, err := s.fileRepository.Create(ctx, s.db, file)
	if err != nil {
		log.Printf("[FileService] вставка не удалась, объект %s осиротел в хранилище", stored.Path)
		return nil, util.LogError("[FileService] не удалось сохранить файл в БД", err)
	}

	log.Printf("[FileService] файл %s успешно загружен (%d байт)", created.OriginalName, created.SizeBytes)
	return created, nil
}

// GetContent : метаданные + поток байтов; решение о доступе принимает access gate
func (s *FileService) GetContent(ctx context.Context, claims *security.Claims, fileUUID string) (*ports.FileContent, error) {
	file, err := s.getFileCached(ctx, fileUUID)
	if err != nil {
		return nil, err
	}

	if err := s.gate.AuthorizeRead(ctx, s.db, file, claims); err != nil {
		return nil, err
	}

	content, err := s.blobStorage.Get(ctx, file.StoragePath)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("[FileService] запись каталога есть, но объект на диске отсутствует: %w", apperrors.ErrNotFound)
		}
		return nil, util.LogError("[FileService] не удалось открыть содержимое файла", err)
	}

	return &ports.FileContent{File: file, Content: content}, nil
}

// getFileCached : метаданные файла через Redis (read-through).
// Ошибки кэша не фатальны — источником истины остаётся БД.
func (s *FileService) getFileCached(ctx context.Context, fileUUID string) (*model.File, error) {
	file, err := s.cacheRepository.GetFile(ctx, fileUUID)
	if err != nil {
		log.Printf("[FileService] ошибка чтения кэша: %v", err)
	}
	if file != nil {
		return file, nil
	}

	file, err = s.fileRepository.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetFile(ctx, file); err != nil {
		log.Printf("[FileService] ошибка записи в кэш: %v", err)
	}

	return file, nil
}

// IssueShareLink : выпускает (или перевыпускает) публичную ссылку на файл.
// Токен и флаг публичности выставляются одним UPDATE; старый токен перестаёт работать.
func (s *FileService) IssueShareLink(ctx context.Context, claims *security.Claims, fileUUID string) (string, *model.File, error) {
	exec, rollback, commit, err := s.fileRepository.BeginTX(ctx)
	if err != nil {
		return "", nil, util.LogError("[FileService] не удалось начать транзакцию", err)
	}
	defer rollback()

	file, err := s.fileRepository.GetByUUID(ctx, exec, fileUUID)
	if err != nil {
		return "", nil, err
	}

	if _, err := s.gate.AuthorizeOwner(ctx, exec, file.OwnerUUID, claims); err != nil {
		return "", nil, err
	}

	token, err := util.GenerateUniqueShareToken(ctx, exec, s.shareTokenLength)
	if err != nil {
		return "", nil, err
	}

	updated, err := s.fileRepository.SetShareToken(ctx, exec, fileUUID, token)
	if err != nil {
		return "", nil, err
	}

	if err := commit(); err != nil {
		return "", nil, util.LogError("[FileService] не удалось закоммитить транзакцию", err)
	}

	if err := s.cacheRepository.DeleteFile(ctx, fileUUID); err != nil {
		log.Printf("[FileService] ошибка инвалидации кэша: %v", err)
	}

	shareURL := fmt.Sprintf("%s/share/%s", s.shareBaseURL, token)
	log.Printf("[FileService] для файла %s выпущена публичная ссылка", fileUUID)
	return shareURL, updated, nil
}

// GetByShareToken : метаданные публичного файла по действующему токену, личность не требуется
func (s *FileService) GetByShareToken(ctx context.Context, token string) (*model.File, error) {
	if token == "" {
		return nil, fmt.Errorf("[FileService] пустой токен: %w", apperrors.ErrValidation)
	}

	return s.fileRepository.GetByShareToken(ctx, s.db, token)
}

// DeleteFile : сначала подтверждённое удаление объекта с диска, затем строка каталога —
// после сбоя между шагами каталог не может указывать на исчезнувшие байты.
// Уже отсутствующий на диске объект логируется и не блокирует удаление строки.
func (s *FileService) DeleteFile(ctx context.Context, claims *security.Claims, fileUUID string) error {
	file, err := s.fileRepository.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return err
	}

	if _, err := s.gate.AuthorizeOwner(ctx, s.db, file.OwnerUUID, claims); err != nil {
		return err
	}

	if err := s.blobStorage.Delete(ctx, file.StoragePath); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[FileService] объект %s уже отсутствует на диске, строка каталога будет удалена", file.StoragePath)
		} else {
			return util.LogError("[FileService] не удалось удалить объект из хранилища", err)
		}
	}

	if err := s.fileRepository.Delete(ctx, s.db, fileUUID); err != nil {
		return err
	}

	if err := s.cacheRepository.DeleteFile(ctx, fileUUID); err != nil {
		log.Printf("[FileService] ошибка инвалидации кэша: %v", err)
	}

	log.Printf("[FileService] файл %s успешно удален", file.OriginalName)
	return nil
}
