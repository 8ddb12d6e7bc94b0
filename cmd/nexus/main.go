package main

import (
	"context"
	"log/slog"
	"os"

	"nexus/internal/awsclient"
	"nexus/internal/cache"
	"nexus/internal/config"
	"nexus/internal/database"
	"nexus/internal/handler"
	"nexus/internal/prompt"
	"nexus/internal/summarizer"
	"nexus/internal/telemetry"
	"nexus/internal/tenantconfig"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).ErrorContext(ctx, "Failed to load config",
			"error", err)

		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	h, cleanup, err := initHandler(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize handler",
			"error", err,
			"configStore", cfg.ConfigStore,
			"cacheBackend", cfg.CacheBackend,
			"inferenceBackend", cfg.InferenceBackend)

		cleanup()
		os.Exit(1)
	}

	log.InfoContext(ctx, "Handler is initialized",
		"modelID", cfg.ModelID,
		"promptBucket", cfg.PromptBucket,
		"configStore", cfg.ConfigStore,
		"cacheBackend", cfg.CacheBackend,
		"inferenceBackend", cfg.InferenceBackend,
		"tracingEnabled", cfg.OTLPEndpoint != "")

	lambda.StartWithOptions(h.HandleAPIGateway,
		lambda.WithEnableSIGTERM(func() {
			log.InfoContext(ctx, "Shutdown signal is received")
			cleanup()
		}))
}

// initHandler builds every client once. The returned cleanup is always safe
// to call, even on error.
func initHandler(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) (*handler.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	tracing, err := telemetry.SetupTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, func() {
		if err := tracing.Shutdown(); err != nil {
			log.ErrorContext(ctx, "Failed to shut down tracing",
				"error", err,
				"otlpEndpoint", cfg.OTLPEndpoint)
		}
	})

	awsCfg, err := awsclient.LoadConfig(ctx, cfg.Region, tracing.Provider)
	if err != nil {
		return nil, cleanup, err
	}

	tenantStore, closeStore, err := initTenantStore(ctx, cfg, awsCfg, log)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, closeStore)

	objectStore, err := prompt.NewS3Store(s3.NewFromConfig(awsCfg))
	if err != nil {
		return nil, cleanup, err
	}

	summaryCache, closeCache, err := initCache(ctx, cfg, log)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, closeCache)

	invoker, err := initInvoker(cfg, awsCfg)
	if err != nil {
		return nil, cleanup, err
	}

	h, err := handler.New(
		tenantconfig.NewResolver(tenantStore, tenantconfig.Defaults{
			ModelID:   cfg.ModelID,
			PromptKey: cfg.DefaultPromptKey,
		}, log),
		prompt.NewLoader(objectStore, log),
		summaryCache,
		invoker,
		cfg.PromptBucket,
		log,
	)

	return h, cleanup, err
}

func initTenantStore(
	ctx context.Context,
	cfg config.Config,
	awsCfg aws.Config,
	log *slog.Logger,
) (tenantconfig.Store, func(), error) {
	if cfg.ConfigStore == config.ConfigStoreSQLite {
		db, err := database.New(ctx, cfg.ConfigDBPath, log)
		if err != nil {
			return nil, func() {}, err
		}

		return db, func() {
			if err = db.Close(); err != nil {
				log.ErrorContext(ctx, "Failed to close db",
					"error", err,
					"dbPath", cfg.ConfigDBPath)
			}
		}, nil
	}

	store, err := tenantconfig.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.ConfigTable)

	return store, func() {}, err
}

func initCache(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
) (*cache.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		store, err := cache.NewRedisStore(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
		if err != nil {
			return nil, func() {}, err
		}

		return cache.New(store, log), func() {
			if err = store.Close(); err != nil {
				log.ErrorContext(ctx, "Failed to close redis client",
					"error", err,
					"redisAddr", cfg.RedisAddr)
			}
		}, nil

	case config.CacheBackendMemory:
		store, err := cache.NewMemoryStore(cfg.MemoryCacheMaxEntries)
		if err != nil {
			return nil, func() {}, err
		}

		return cache.New(store, log), func() {}, nil

	default:
		log.InfoContext(ctx, "Cache is disabled",
			"cacheBackend", cfg.CacheBackend)

		return cache.New(nil, log), func() {}, nil
	}
}

func initInvoker(cfg config.Config, awsCfg aws.Config) (summarizer.Invoker, error) {
	if cfg.InferenceBackend == config.InferenceBackendOpenAI {
		return summarizer.NewOpenAIInvoker(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}

	return summarizer.NewBedrockInvoker(bedrockruntime.NewFromConfig(awsCfg))
}
