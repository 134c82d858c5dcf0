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
	"github.com/jmoiron/sqlx"
	"log"
	"strings"
)

// предохранитель от бесконечного обхода при повреждённой иерархии
const maxFolderDepth = 255

type FolderService struct {
	folderRepository ports.FolderRepository
	fileRepository   ports.FileRepository
	blobStorage      ports.BlobStorage
	gate             ports.AccessGate
	db               *config.Database
}

func NewFolderService(
	folderRepository ports.FolderRepository,
	fileRepository ports.FileRepository,
	blobStorage ports.BlobStorage,
	gate ports.AccessGate,
	db *config.Database,
) *FolderService {
	return &FolderService{
		folderRepository: folderRepository,
		fileRepository:   fileRepository,
		blobStorage:      blobStorage,
		gate:             gate,
		db:               db,
	}
}

// ListFolders : папки вызывающего под parentUUID (nil — верхний уровень)
func (s *FolderService) ListFolders(ctx context.Context, claims *security.Claims, parentUUID *string) ([]model.Folder, error) {
	user, err := s.gate.ResolveUser(ctx, s.db, claims)
	if err != nil {
		return nil, err
	}

	return s.folderRepository.ListByOwner(ctx, s.db, user.UUID, parentUUID)
}

// CreateFolder : создаёт папку вызывающего; родитель должен существовать и принадлежать ему же
func (s *FolderService) CreateFolder(ctx context.Context, claims *security.Claims, name string, parentUUID *string) (*model.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("[FolderService] пустое имя папки: %w", apperrors.ErrValidation)
	}

	user, err := s.gate.ResolveUser(ctx, s.db, claims)
	if err != nil {
		return nil, err
	}

	if parentUUID != nil {
		parent, err := s.folderRepository.GetByUUID(ctx, s.db, *parentUUID)
		if err != nil {
			return nil, err
		}
		if parent.OwnerUUID != user.UUID {
			return nil, fmt.Errorf("[FolderService] родительская папка принадлежит другому пользователю: %w", apperrors.ErrForbidden)
		}
	}

	folder := &model.Folder{
		UUID:       uuid.New().String(),
		Name:       strings.TrimSpace(name),
		OwnerUUID:  user.UUID,
		ParentUUID: parentUUID,
	}

	created, err := s.folderRepository.Create(ctx, s.db, folder)
	if err != nil {
		return nil, util.LogError("[FolderService] не удалось создать папку", err)
	}

	return created, nil
}

// UpdateFolder : переименование и/или перенос.
// Перенос под собственного потомка (или в саму себя) отклоняется — иерархия остаётся деревом.
func (s *FolderService) UpdateFolder(ctx context.Context, claims *security.Claims, folderUUID string, name *string, parentUUID *string, moveToRoot bool) (*model.Folder, error) {
	exec, rollback, commit, err := s.folderRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[FolderService] не удалось начать транзакцию", err)
	}
	defer rollback()

	folder, err := s.folderRepository.GetByUUID(ctx, exec, folderUUID)
	if err != nil {
		return nil, err
	}

	if _, err := s.gate.AuthorizeOwner(ctx, exec, folder.OwnerUUID, claims); err != nil {
		return nil, err
	}

	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, fmt.Errorf("[FolderService] пустое имя папки: %w", apperrors.ErrValidation)
		}
		folder.Name = strings.TrimSpace(*name)
	}

	switch {
	case moveToRoot:
		folder.ParentUUID = nil
	case parentUUID != nil:
		parent, err := s.folderRepository.GetByUUID(ctx, exec, *parentUUID)
		if err != nil {
			return nil, err
		}
		if parent.OwnerUUID != folder.OwnerUUID {
			return nil, fmt.Errorf("[FolderService] новая родительская папка принадлежит другому пользователю: %w", apperrors.ErrForbidden)
		}
		if err := s.checkNoCycle(ctx, exec, folder.UUID, parent); err != nil {
			return nil, err
		}
		folder.ParentUUID = parentUUID
	}

	updated, err := s.folderRepository.Update(ctx, exec, folder)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[FolderService] не удалось закоммитить транзакцию", err)
	}

	return updated, nil
}

// checkNoCycle : поднимается по предкам нового родителя; встретить переносимую папку — значит создать цикл
func (s *FolderService) checkNoCycle(ctx context.Context, exec sqlx.ExtContext, folderUUID string, newParent *model.Folder) error {
	current := newParent
	for depth := 0; depth < maxFolderDepth; depth++ {
		if current.UUID == folderUUID {
			return fmt.Errorf("[FolderService] перенос папки внутрь самой себя: %w", apperrors.ErrValidation)
		}
		if current.ParentUUID == nil {
			return nil
		}

		parent, err := s.folderRepository.GetByUUID(ctx, exec, *current.ParentUUID)
		if err != nil {
			return err
		}
		current = parent
	}

	return fmt.Errorf("[FolderService] превышена глубина вложенности папок: %w", apperrors.ErrValidation)
}

// DeleteFolder : строки каталога удаляет каскад БД в транзакции,
// объекты на диске зачищаются после коммита. Ошибка зачистки логируется,
// но откатить уже удалённые строки не может — допускаются осиротевшие объекты.
func (s *FolderService) DeleteFolder(ctx context.Context, claims *security.Claims, folderUUID string) error {
	exec, rollback, commit, err := s.folderRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[FolderService] не удалось начать транзакцию", err)
	}
	defer rollback()

	folder, err := s.folderRepository.GetByUUID(ctx, exec, folderUUID)
	if err != nil {
		return err
	}

	if _, err := s.gate.AuthorizeOwner(ctx, exec, folder.OwnerUUID, claims); err != nil {
		return err
	}

	storagePaths, err := s.fileRepository.ListStoragePathsUnderFolder(ctx, exec, folderUUID)
	if err != nil {
		return err
	}

	if err := s.folderRepository.Delete(ctx, exec, folderUUID); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[FolderService] не удалось закоммитить транзакцию", err)
	}

	for _, path := range storagePaths {
		if err := s.blobStorage.Delete(ctx, path); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				log.Printf("[FolderService] объект %s уже отсутствует на диске", path)
				continue
			}
			log.Printf("[FolderService] не удалось удалить объект %s: %v", path, err)
		}
	}

	log.Printf("[FolderService] папка %s удалена вместе с %d файлами", folderUUID, len(storagePaths))
	return nil
}
