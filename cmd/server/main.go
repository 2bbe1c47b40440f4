package main

import (
	"fmt"
	"log"

	"veridoc/internal/config"
	"veridoc/internal/email/noop"
	"veridoc/internal/email/ses"
	"veridoc/internal/handler"
	"veridoc/internal/port"
	"veridoc/internal/recognize"
	"veridoc/internal/repository/postgres"
	"veridoc/internal/router"
	"veridoc/internal/service"
	s3storage "veridoc/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	recordRepo := postgres.NewRecordRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize OCR engine
	engine, err := recognize.Default(cfg.OCR.Languages)
	if err != nil {
		return fmt.Errorf("failed to initialize OCR engine: %w", err)
	}
	defer engine.Close()

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	verificationSvc := service.NewVerificationService(engine, recordRepo, userRepo, s3Client, emailSender, cfg)
	recordSvc := service.NewRecordService(recordRepo, s3Client, cfg)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	ocrH := handler.NewOCRHandler(verificationSvc, cfg.S3.MaxFileSizeMB)
	recordH := handler.NewRecordHandler(recordSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, ocrH, recordH, userH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
