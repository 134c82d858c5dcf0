package main

import (
	"cloud-drive-server/config"
	_ "cloud-drive-server/docs"
	"cloud-drive-server/internal/handler"
	"cloud-drive-server/internal/ports"
	"cloud-drive-server/internal/repository"
	"cloud-drive-server/internal/security"
	"cloud-drive-server/internal/service"
	"cloud-drive-server/internal/storage"
	"context"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title Cloud-drive-server
// @version 1.0
// @description REST API облачного файлового хранилища: папки, файлы, публичные ссылки

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	blobStorage, err := setupBlobStorage(ctx, &cfg.Storage)
	if err != nil {
		log.Fatalf("Ошибка инициализации хранилища: %v", err)
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	fileRepo := repository.NewFileRepository(db)
	shareRepo := repository.NewShareRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.Cache.TTLSeconds)*time.Second)

	gate := service.NewAccessGate(userRepo)
	userService := service.NewUserService(userRepo, gate, db)
	folderService := service.NewFolderService(folderRepo, fileRepo, blobStorage, gate, db)
	fileService := service.NewFileService(fileRepo, folderRepo, cacheRepo, blobStorage, gate, db, &cfg.Upload, &cfg.Share)
	shareService := service.NewShareService(shareRepo, fileRepo, gate, db)

	jwtService := security.NewJWTService(&cfg.Auth)

	userHandler := handler.NewUserHandler(userService)
	folderHandler := handler.NewFolderHandler(folderService)
	fileHandler := handler.NewFileHandler(fileService, &cfg.Upload)
	shareHandler := handler.NewShareHandler(shareService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupUserRoutes(router, userHandler, jwtService, cfg)
	setupFolderRoutes(router, folderHandler, jwtService, cfg)
	setupFileRoutes(router, fileHandler, jwtService, cfg)
	setupShareRoutes(router, shareHandler, jwtService, cfg)

	runServer(ctx, srv)
}

// setupBlobStorage : бэкенд по конфигурации — локальный диск либо S3-совместимое хранилище
func setupBlobStorage(ctx context.Context, cfg *config.StorageConfig) (ports.BlobStorage, error) {
	if cfg.Backend == "s3" {
		return storage.NewS3Storage(ctx, &cfg.S3)
	}
	return storage.NewLocalStorage(cfg.LocalDir)
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.Auth.SecretKey), jwtService))
			r.Get("/profile", h.GetProfile)
		})
	})
}

func setupFolderRoutes(r chi.Router, h *handler.FolderHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/folders", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.Auth.SecretKey), jwtService))
		r.Get("/", h.ListFolders)
		r.Post("/", h.CreateFolder)
		r.Put("/{uuid}", h.UpdateFolder)
		r.Delete("/{uuid}", h.DeleteFolder)
	})
}

func setupFileRoutes(r chi.Router, h *handler.FileHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/files", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware([]byte(cfg.Auth.SecretKey), jwtService))
			r.Get("/", h.ListFiles)
			r.Get("/recent", h.RecentFiles)
			r.Post("/upload", h.UploadFile)
			r.Post("/{uuid}/share", h.ShareFile)
			r.Delete("/{uuid}", h.DeleteFile)
		})

		// скачивание и просмотр доступны и анонимно, если файл публичный
		r.Group(func(r chi.Router) {
			r.Use(security.OptionalJWTMiddleware([]byte(cfg.Auth.SecretKey), jwtService))
			r.Get("/{uuid}/download", h.DownloadFile)
			r.Get("/{uuid}/view", h.ViewFile)
		})
	})

	r.Get("/api/share/{token}", h.GetSharedFile)
}

func setupShareRoutes(r chi.Router, h *handler.ShareHandler, jwtService *security.JWTService, cfg *config.AppConfig) {
	r.Route("/api/shares", func(r chi.Router) {
		r.Use(security.JWTMiddleware([]byte(cfg.Auth.SecretKey), jwtService))
		r.Post("/", h.CreateShare)
		r.Get("/", h.ListShares)
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
