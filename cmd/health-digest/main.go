package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"health-digest/internal/archive"
	"health-digest/internal/config"
	"health-digest/internal/db"
	"health-digest/internal/event"
	"health-digest/internal/imagegen"
	"health-digest/internal/news"
	"health-digest/internal/notify"
	"health-digest/internal/pipeline"
	"health-digest/internal/synth"
	"health-digest/internal/wordpress"
)

func main() {
	// Root context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stdout, "[health-digest] ", log.LstdFlags|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		logger.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	imageClient := &http.Client{Timeout: cfg.ImageTimeout}

	collector := news.NewCollector(cfg.FeedSources, cfg.MaxPerSource, httpClient, logger)
	synthesizer := synth.NewSynthesizer(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.MaxTokens, logger)
	images := imagegen.NewClient(cfg.ImageBaseURL, cfg.ImageWidth, cfg.ImageHeight, cfg.ImageDelay, imageClient, logger)
	backend := wordpress.NewClient(cfg.WPURL, cfg.WPUser, cfg.WPAppPassword, httpClient, logger)
	notifier := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, logger)

	// Event publisher (RabbitMQ), only when configured
	var events pipeline.EventPublisher
	if cfg.RabbitURI != "" {
		publisher, err := event.NewRabbitPublisher(
			cfg.RabbitURI,
			cfg.RabbitExchange,
			cfg.RabbitRoutingKey,
			logger,
		)
		if err != nil {
			logger.Fatalf("failed to init rabbit publisher: %v", err)
		}
		defer publisher.Close()
		events = publisher
	}

	// Run archive (Mongo), only when configured
	var archiver pipeline.Archiver
	if cfg.MongoURI != "" {
		mongoClient, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			logger.Fatalf("failed to connect to db: %v", err)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(disconnectCtx); err != nil {
				logger.Printf("mongo disconnect error: %v", err)
			}
		}()

		repo, err := archive.NewMongoRepository(mongoClient.Database(cfg.MongoDBName), logger)
		if err != nil {
			logger.Fatalf("failed to init archive repository: %v", err)
		}
		archiver = repo
	}

	run := pipeline.New(
		collector,
		synthesizer,
		images,
		backend,
		notifier,
		events,
		archiver,
		cfg.CategoryID,
		logger,
	)

	logger.Println("=== health digest run starting ===")

	link, err := run.Run(ctx)
	switch {
	case errors.Is(err, pipeline.ErrNoNews):
		logger.Println("nothing collected - aborting run")
	case err != nil:
		logger.Printf("run failed: %v", err)
	default:
		logger.Printf("=== done: %s ===", link)
	}
}
