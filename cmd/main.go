package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"meetz/backend/internal/api/handler"
	"meetz/backend/internal/config"
	"meetz/backend/internal/evidence"
	"meetz/backend/internal/identity"
	"meetz/backend/internal/mail"
	"meetz/backend/internal/meetchat"
	"meetz/backend/internal/models"
	"meetz/backend/internal/report"
	"meetz/backend/internal/storage"
	"meetz/backend/internal/transcribe"
	"meetz/backend/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client, *minio.Client) {
	// TranslateError turns the unique index rejection on reports into
	// gorm.ErrDuplicatedKey, which the storage layer depends on.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		slog.Error("failed to connect PostgreSQL", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Manager{},
		&models.Meeting{},
		&models.User{},
		&models.Report{},
		&models.BlackList{},
	); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("failed to connect Redis", "error", err)
		os.Exit(1)
	}

	objStore, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		slog.Error("failed to set up object storage client", "error", err)
		os.Exit(1)
	}

	slog.Info("database, redis and object storage connections established")
	return db, rdb, objStore
}

func main() {
	logging.Setup()
	slog.Info("starting Meetz backend")

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded")
	}
	cfg := config.Load()

	db, rdb, objStore := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	resolver := identity.NewResolver(s)
	retriever := evidence.NewRetriever(&evidence.MinioStore{Client: objStore}, cfg.BucketPrefix, cfg.LegacyURLPrefixFormat)
	engine := transcribe.NewHTTPEngine(cfg.TranscribeEndpoint, cfg.TranscribeTimeout)
	reports := report.NewService(s, resolver, retriever, engine, cfg.StorageTimeout, cfg.TranscribeTimeout)
	mailSvc := mail.NewService(s, &mail.SMTPSender{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		From: cfg.SMTPFrom,
		Pass: cfg.SMTPPass,
	})

	hub := meetchat.NewHub(s)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	r := gin.Default()
	h := handler.NewHandler(reports, mailSvc, hub, resolver, []byte(cfg.JWTSecret))
	h.Routes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	slog.Info("HTTP server listening", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
