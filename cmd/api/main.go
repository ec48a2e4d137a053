package main

import (
	"log"

	"college-api/config"
	"college-api/handlers"
	"college-api/middleware"
	"college-api/services"
	"college-api/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Start service")
	// Загружаем .env файл (игнорируем ошибку для продакшн)
	_ = godotenv.Load()

	cfg := config.Load()

	log.Println("init store")
	documentStore, err := store.New(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}
	log.Printf("Data file: %s", documentStore.Path())

	log.Println("init services")
	var blobStorage services.BlobStorage
	var diskStorage *services.DiskStorage
	switch cfg.StorageBackend {
	case "minio":
		blobStorage, err = services.NewMinIOStorage(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
	default:
		diskStorage, err = services.NewDiskStorage(cfg.UploadsDir)
		if err != nil {
			log.Fatalf("Failed to initialize disk storage: %v", err)
		}
		blobStorage = diskStorage
	}

	cacheService := services.NewListingCache(cfg.CacheTTL)
	uploadService := services.NewUploadService(documentStore, blobStorage, cacheService, cfg.MaxUploadBytes, cfg.UploadsDir)

	log.Println("init handlers")
	statusHandler := handlers.NewStatusHandler()
	fileHandler := handlers.NewFileHandler(documentStore, uploadService, cacheService, blobStorage)
	authHandler := handlers.NewAuthHandler(documentStore)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.PublicBaseURL)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Println("init router")
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(gin.Recovery())

	router.GET("/", statusHandler.Index)

	// Содержимое файлов: локальный каталог раздаётся статикой,
	// объектное хранилище проксируется handler'ом
	if diskStorage != nil {
		router.Static("/uploads", diskStorage.Dir())
	} else {
		router.GET("/uploads/:filename", fileHandler.Download)
	}

	api := router.Group("/api")
	{
		api.GET("/status", statusHandler.Status)
		api.GET("/data", fileHandler.GetData)
		api.GET("/teachers", fileHandler.GetTeachers)
		api.GET("/modules", fileHandler.GetModules)
		api.GET("/files/:subject/:module", fileHandler.GetFiles)
		api.GET("/teacher-files/:subject", fileHandler.GetTeacherFiles)

		api.POST("/module-login", authHandler.ModuleLogin)
		api.POST("/teacher-login", authHandler.TeacherLogin)
		api.POST("/update-password", authHandler.UpdatePassword)

		api.POST("/cache/invalidate", fileHandler.InvalidateCache)

		api.POST("/upload", uploadHandler.Upload)
		api.POST("/update-filename", fileHandler.RenameFile)
		api.POST("/delete-file", fileHandler.DeleteFile)
	}

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
