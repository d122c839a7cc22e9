package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"hellomiami/config"
	_ "hellomiami/docs"
	authadapter "hellomiami/internal/adapters/auth"
	"hellomiami/internal/adapters/email"
	"hellomiami/internal/adapters/media"
	httpdelivery "hellomiami/internal/delivery/http"
	"hellomiami/internal/delivery/http/controllers"
	"hellomiami/internal/delivery/http/middleware"
	"hellomiami/internal/repository/postgres"
	"hellomiami/internal/services"
)

// @title hello_miami API
// @version 1.0
// @description Community API for hello_miami: member profiles, project showcases, demo slot booking, and surveys.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	// Repositories
	memberRepo := postgres.NewMemberRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	slotRepo := postgres.NewDemoSlotRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	surveyRepo := postgres.NewSurveyRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	loginCodeRepo := postgres.NewLoginCodeRepository(db)

	// Adapters
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	}, logger)
	renderer := email.NewTemplateRenderer()
	mediaStore := media.NewS3Store(media.S3Config{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.MediaBucket,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		PublicBaseURL:   cfg.MediaPublicBaseURL,
	})
	hasher := authadapter.NewBcryptHasher(0)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	// Services
	notifier := services.NewNotificationService(memberRepo, eventRepo, mailer, renderer, cfg.OrganizerEmails, logger)
	slotService := services.NewDemoSlotService(slotRepo, memberRepo, eventRepo, roleRepo, notifier, logger)
	memberService := services.NewMemberService(memberRepo, mediaStore)
	eventService := services.NewEventService(eventRepo)
	projectService := services.NewProjectService(projectRepo, roleRepo, mediaStore)
	surveyService := services.NewSurveyService(surveyRepo)
	authService := services.NewAuthService(memberRepo, roleRepo, loginCodeRepo, hasher, tokenIssuer, cfg.JWTExpiry, notifier)

	// HTTP delivery
	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:     controllers.NewAuthController(logger, authService),
		Member:   controllers.NewMemberController(logger, memberService),
		Event:    controllers.NewEventController(logger, eventService),
		DemoSlot: controllers.NewDemoSlotController(logger, slotService),
		Project:  controllers.NewProjectController(logger, projectService),
		Survey:   controllers.NewSurveyController(logger, surveyService),
	}, tokenVerifier, logger)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
