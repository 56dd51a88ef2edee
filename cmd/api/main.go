package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetly/internal/adapter/handler"
	"github.com/johnquangdev/meetly/internal/adapter/repository"
	"github.com/johnquangdev/meetly/internal/infrastructure/cache"
	"github.com/johnquangdev/meetly/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meetly/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meetly/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/meetly/internal/usecase/ai"
	"github.com/johnquangdev/meetly/internal/usecase/feedback"
	"github.com/johnquangdev/meetly/internal/usecase/meeting"
	"github.com/johnquangdev/meetly/internal/usecase/otp"
	pkgai "github.com/johnquangdev/meetly/pkg/ai"
	"github.com/johnquangdev/meetly/pkg/config"
	"github.com/johnquangdev/meetly/pkg/jwt"
	"github.com/johnquangdev/meetly/pkg/mailer"
	"github.com/johnquangdev/meetly/pkg/sentiment"
	pkgvalidator "github.com/johnquangdev/meetly/pkg/validator"
)

// @title           Meetly.AI API
// @version         1.0
// @description     Meeting transcript analysis: summaries, action items, decisions and sentiment breakdowns

// @BasePath  /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(httpmw.RequestID())
	if cfg.IsProduction() {
		e.Use(httpmw.RequestLogger(logger))
	} else {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
		}))
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema migrations at startup are opt-in and refused in production
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run cmd/migrate instead.")
		}
		log.Println("🔄 Applying migrations from", cfg.Database.MigrationsDir)
		if err := database.AutoMigrate(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping startup migrations; use cmd/migrate")
	}

	// OTP store: Redis when enabled, in-process otherwise
	var otpStore cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		otpStore = cache.NewRedisStore(redisClient, "meetly:")
	} else {
		log.Println("⚠️  Redis disabled, OTPs are kept in memory")
		memStore := cache.NewMemoryStore(time.Minute)
		defer memStore.Close()
		otpStore = memStore
	}

	// Optional transcript archive
	var archiver meeting.Archiver
	var storagePinger handler.Pinger
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(context.Background(), &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		archiver = minioClient
		storagePinger = minioClient
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	analyzer, err := pkgai.NewAnalyzer(context.Background(), &cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	aiService := aiuse.NewAIService(analyzer, cfg.AI.ChunkCharSize, logger)

	var transcriber pkgai.Transcriber
	if t := pkgai.NewAssemblyAITranscriber(&cfg.Assembly); t != nil {
		transcriber = t
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set, audio uploads are disabled")
	}

	var vader *sentiment.Vader
	if cfg.Sentiment.Fallback == "vader" {
		vader = sentiment.NewVader()
	}
	palette := sentiment.DefaultPalette
	palette.Neutral = cfg.Sentiment.NeutralColor

	log.Println("🔑 Initializing share link signer...")
	shareTokens := jwt.NewManager(cfg.Share.Secret, cfg.Share.Expiry)

	// Initialize services
	meetingService := meeting.NewMeetingService(meetingRepo, aiService, shareTokens, meeting.Options{
		Transcriber:        transcriber,
		Archiver:           archiver,
		Vader:              vader,
		Synthesizer:        sentiment.NewSynthesizer(palette),
		AnalyzeSynthesizer: sentiment.NewSynthesizer(sentiment.AnalyzePalette),
		PublicBaseURL:      cfg.Server.PublicBaseURL,
	}, logger)
	feedbackService := feedback.NewService(feedbackRepo)
	otpService := otp.NewService(otpStore, mailer.NewSendGridClient(&cfg.Email), cfg.OTP.Expiry, cfg.OTP.Length, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		logger,
		handler.NewHealthHandler(cfg.Server.Environment, map[string]handler.Pinger{
			"database": meetingRepo,
			"storage":  storagePinger,
		}, logger),
		handler.NewMeetingHandler(meetingService, cfg.Server.MaxUploadBytes, logger),
		handler.NewFeedbackHandler(feedbackService, logger),
		handler.NewOTPHandler(otpService, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🤖 AI provider: %s", analyzer.Name())
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
