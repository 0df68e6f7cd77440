package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/internhub/internal/config"
	"github.com/fadilmartias/internhub/internal/domain/fiber/handler"
	"github.com/fadilmartias/internhub/internal/flow"
	"github.com/fadilmartias/internhub/internal/middleware"
	"github.com/fadilmartias/internhub/internal/repository"
	"github.com/fadilmartias/internhub/internal/service"
	"github.com/fadilmartias/internhub/internal/storage"
	"github.com/fadilmartias/internhub/internal/usecase"
	"github.com/fadilmartias/internhub/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: usecase.MaxResumeSize * 2,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))

	storageConfig := config.LoadStorageConfig()

	var db *gorm.DB
	if storageConfig.Driver == config.StoragePostgres || config.LoadDBConfig().Host != "" {
		db = ConnectDB()
	}
	kv := ConnectKV(ctx, storageConfig, db)

	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return kv.Ping(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	var index repository.EmbeddingIndex = repository.NewMemoryIndex()
	if db != nil {
		pg := repository.NewPgVectorIndex(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Printf("pgvector unavailable, using in-memory index: %v", err)
		} else {
			index = pg
		}
	}

	var (
		generators []service.Generator
		embedder   service.Embedder
	)
	gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig())
	if err != nil {
		log.Printf("Gemini disabled: %v", err)
	} else {
		generators = append(generators, gemini)
		embedder = gemini
	}
	if orConfig := config.LoadOpenRouterConfig(); orConfig.APIKey != "" {
		generators = append(generators, service.NewOpenRouterService(orConfig))
	}
	if len(generators) == 0 {
		log.Println("Warning: no AI provider configured, AI endpoints will fail")
	}

	blob := ConnectBlob(ctx)
	publisher := ConnectPublisher()

	market := usecase.NewMarketplaceUsecase(usecase.MarketplaceDeps{
		Internships:  repository.NewInternshipRepository(kv),
		Applications: repository.NewApplicationRepository(kv),
		Results:      repository.NewInterviewResultRepository(kv),
		Profiles:     repository.NewProfileRepository(kv),
		Index:        index,
		Embedder:     embedder,
		Events:       publisher,
	})
	flows := flow.New(service.NewFallbackGenerator(generators...))
	ai := usecase.NewAIUsecase(market, flows, index, embedder)
	resume := usecase.NewResumeUsecase(blob, flows)

	handler.NewInternshipHandler(market, ai).RegisterRoutes(app)
	handler.NewStudentHandler(market, ai).RegisterRoutes(app)
	handler.NewAIHandler(ai, resume).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	go func() {
		log.Println("Server running on ", appConfig.Port)
		if err := app.Listen(appConfig.Port); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	market.Wait()
	if err := publisher.Close(); err != nil {
		log.Printf("Publisher close error: %v", err)
	}
	if err := kv.Close(); err != nil {
		log.Printf("Storage close error: %v", err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db
}

func ConnectKV(ctx context.Context, cfg *config.StorageConfig, db *gorm.DB) storage.KV {
	switch cfg.Driver {
	case config.StoragePostgres:
		kv := storage.NewPostgresKV(db)
		if err := kv.Migrate(ctx, repository.EmptyDocuments); err != nil {
			log.Fatal("migration failed: ", err)
		}
		return kv
	case config.StorageRedis:
		rc := config.LoadRedisConfig()
		kv, err := storage.NewRedisKVFromOptions(ctx, rc.Address, rc.Password, rc.DB, rc.Prefix)
		if err != nil {
			log.Fatalf("Could not connect to redis: %v", err)
		}
		return kv
	default:
		log.Println("Using in-memory storage, data is lost on restart")
		return storage.NewMemoryKV()
	}
}

func ConnectBlob(ctx context.Context) storage.Blob {
	bc := config.LoadBlobConfig()
	if bc.Driver == "s3" {
		blob, err := storage.NewS3Blob(ctx, storage.S3Options{
			Bucket:    bc.Bucket,
			Region:    bc.Region,
			Endpoint:  bc.Endpoint,
			AccessKey: bc.AccessKey,
			SecretKey: bc.SecretKey,
		})
		if err != nil {
			log.Fatalf("Could not create S3 blob store: %v", err)
		}
		return blob
	}
	blob, err := storage.NewLocalBlob(bc.LocalDir)
	if err != nil {
		log.Fatalf("Could not create local blob store: %v", err)
	}
	return blob
}

func ConnectPublisher() service.EventPublisher {
	rc := config.LoadRabbitMQConfig()
	if rc.URL == "" {
		return service.NoopPublisher{}
	}
	publisher, err := service.NewAMQPPublisher(rc.URL, rc.Exchange)
	if err != nil {
		log.Printf("RabbitMQ unavailable, events disabled: %v", err)
		return service.NoopPublisher{}
	}
	return publisher
}
