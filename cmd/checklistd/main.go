// checklistd turns infrastructure alerts into runbook-grounded remediation
// checklists: parse the alert, enrich it with resource context, retrieve the
// most relevant runbook chunks, ask an LLM to draft a checklist, and fan it
// out to the configured destinations.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"github.com/tarsy-labs/checklist-rag/pkg/alert"
	"github.com/tarsy-labs/checklist-rag/pkg/api"
	"github.com/tarsy-labs/checklist-rag/pkg/checklist"
	"github.com/tarsy-labs/checklist-rag/pkg/config"
	"github.com/tarsy-labs/checklist-rag/pkg/embedding"
	"github.com/tarsy-labs/checklist-rag/pkg/enrich"
	"github.com/tarsy-labs/checklist-rag/pkg/pipeline"
	"github.com/tarsy-labs/checklist-rag/pkg/retriever"
	"github.com/tarsy-labs/checklist-rag/pkg/runbook"
	"github.com/tarsy-labs/checklist-rag/pkg/slack"
	"github.com/tarsy-labs/checklist-rag/pkg/vectorstore"
	"github.com/tarsy-labs/checklist-rag/pkg/webhook"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: Could not load %s file: %v", envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", envPath)
	}

	httpPort := getEnv("HTTP_PORT", "8080")
	log.Printf("Starting checklistd")
	log.Printf("HTTP Port: %s", httpPort)
	log.Printf("Config Directory: %s", *configDir)

	ctx := context.Background()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}
	stats := cfg.Stats()
	log.Printf("Configuration loaded: vectorStoreProvider=%s webhookDestinations=%d fileOutputEnabled=%t",
		stats.VectorStoreProvider, stats.WebhookDestinations, stats.FileOutputEnabled)

	var awsCfg *aws.Config
	if needsAWS(cfg) {
		loaded, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("Failed to load AWS SDK configuration: %v", err)
		}
		awsCfg = &loaded
	}

	embedder, err := buildEmbedder(cfg, awsCfg)
	if err != nil {
		log.Fatalf("Failed to build embedding provider: %v", err)
	}

	store, err := buildVectorStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build vector store: %v", err)
	}

	llm, err := buildLLM(cfg, awsCfg)
	if err != nil {
		log.Fatalf("Failed to build LLM provider: %v", err)
	}

	source, err := buildRunbookSource(cfg, awsCfg)
	if err != nil {
		log.Fatalf("Failed to build runbook source: %v", err)
	}

	chunkOpts := runbook.ChunkerOptions{
		MinChunkChars: cfg.Runbooks.MinChunkChars,
		MaxChunkChars: cfg.Runbooks.MaxChunkChars,
	}
	runbooks := runbook.NewService(source, embedder, store, chunkOpts, slog.Default().With("component", "runbook"))

	registry := alert.NewRegistry(alert.NewCloudAlarmAdapter())

	e := buildEnricher(cfg)
	r := retriever.New(embedder, store)
	g := checklist.New(llm, defaultGenerateOptions(cfg))
	pl := pipeline.New(e, r, g)

	dispatcher := buildDispatcher(cfg)

	if cfg.Runbooks.IngestOnStartup {
		go func() {
			log.Println("Ingesting runbook corpus on startup")
			if err := runbooks.IngestAll(context.Background()); err != nil {
				log.Printf("Startup runbook ingestion failed: %v", err)
			}
		}()
	}

	server := api.NewServer(cfg, registry, pl, runbooks, dispatcher, store)

	srvErrCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on :%s", httpPort)
		srvErrCh <- server.Start(":" + httpPort)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-srvErrCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server stopped: %v", err)
		}
	case sig := <-sigCh:
		log.Printf("Received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

func needsAWS(cfg *config.Config) bool {
	return cfg.Cloud.Provider == config.CloudProviderAWS ||
		cfg.LLM.Provider == config.LLMProviderAWSBedrock
}

func defaultGenerateOptions(cfg *config.Config) checklist.GenerateOptions {
	opts := checklist.DefaultGenerateOptions()
	if g := cfg.LLM.Generate; g != nil {
		if g.Temperature != 0 {
			opts.Temperature = g.Temperature
		}
		if g.MaxTokens != 0 {
			opts.MaxTokens = g.MaxTokens
		}
	}
	return opts
}

func buildEnricher(cfg *config.Config) *enrich.Enricher {
	// The compute-metadata/metrics/logs providers this domain would call are
	// cloud-specific telemetry APIs (CloudWatch, OCI Monitoring, etc.) that
	// are outside the retrieved dependency surface; the enricher still runs
	// its fan-out/fan-in against nil-safe no-op providers so every alert
	// gets a best-effort EnrichedContext rather than failing outright.
	return enrich.New(noopMetadataProvider{}, noopMetricsProvider{}, noopLogsProvider{}, enrich.DefaultLookback, slog.Default().With("component", "enrich"))
}

func buildDispatcher(cfg *config.Config) *webhook.Dispatcher {
	var destinations []webhook.Destination

	if cfg.Output.File.Enabled {
		filter := webhook.Filter{}
		destinations = append(destinations, webhook.NewFileDestination("file-archive", cfg.Output.File.OutputDirectory, filter))
	}

	for _, w := range cfg.Output.Webhooks {
		if !w.Enabled {
			continue
		}
		filter := webhook.Filter{Severities: w.Filter.Severities, RequiredLabels: w.Filter.RequiredLabels}
		retry := webhook.RetryConfig{RetryCount: w.RetryCount, InitialDelay: time.Duration(w.RetryDelayMs) * time.Millisecond}
		if retry.RetryCount == 0 && retry.InitialDelay == 0 {
			retry = webhook.DefaultRetryConfig()
		}

		switch w.Type {
		case config.DestinationTypeHTTP:
			destinations = append(destinations, webhook.NewHTTPDestination(w.Name, w.URL, w.Headers, filter, retry, http.DefaultClient))
		case config.DestinationTypeFile:
			destinations = append(destinations, webhook.NewFileDestination(w.Name, cfg.Output.File.OutputDirectory, filter))
		case config.DestinationTypeSlack:
			if cfg.Integrations.Slack == nil {
				log.Printf("webhook %q is type=slack but integrations.slack is not configured, skipping", w.Name)
				continue
			}
			svc := slack.NewService(slack.ServiceConfig{
				Token:        os.Getenv(cfg.Integrations.Slack.TokenEnv),
				Channel:      cfg.Integrations.Slack.Channel,
				DashboardURL: cfg.Integrations.Slack.DashboardURL,
			})
			if svc == nil {
				log.Printf("webhook %q is type=slack but the slack service could not be built (missing token/channel), skipping", w.Name)
				continue
			}
			destinations = append(destinations, webhook.NewSlackDestination(w.Name, svc, filter, retry))
		}
	}

	return webhook.NewDispatcher(destinations...)
}

func buildEmbedder(cfg *config.Config, awsCfg *aws.Config) (embedding.Provider, error) {
	switch cfg.LLM.Provider {
	case config.LLMProviderOllama:
		m := cfg.LLM.Ollama
		return embedding.NewOllamaProvider(m.BaseURL, m.EmbeddingModel, cfg.VectorStore.Dimension, nil), nil
	case config.LLMProviderAWSBedrock:
		client := bedrockruntime.NewFromConfig(*awsCfg)
		return embedding.NewBedrockProvider(client, cfg.LLM.AWSBedrock.EmbeddingModel, cfg.VectorStore.Dimension), nil
	default:
		return nil, errUnknownLLMProvider(cfg.LLM.Provider)
	}
}

func buildLLM(cfg *config.Config, awsCfg *aws.Config) (checklist.LLM, error) {
	switch cfg.LLM.Provider {
	case config.LLMProviderOllama:
		m := cfg.LLM.Ollama
		return checklist.NewOllamaLLM(m.BaseURL, m.TextModel, nil), nil
	case config.LLMProviderAWSBedrock:
		client := bedrockruntime.NewFromConfig(*awsCfg)
		return checklist.NewBedrockLLM(client, cfg.LLM.AWSBedrock.TextModel), nil
	default:
		return nil, errUnknownLLMProvider(cfg.LLM.Provider)
	}
}

func buildVectorStore(ctx context.Context, cfg *config.Config) (vectorstore.Store, error) {
	if cfg.VectorStore.Provider.UsesQdrant() {
		q := cfg.VectorStore.Qdrant
		return vectorstore.NewQdrantStore(ctx, q.Address, q.Collection, cfg.VectorStore.Dimension)
	}
	return vectorstore.NewLocalStore(cfg.VectorStore.Dimension), nil
}

func buildRunbookSource(cfg *config.Config, awsCfg *aws.Config) (runbook.Source, error) {
	if gh := cfg.Runbooks.GitHub; gh != nil {
		token := ""
		if gh.TokenEnv != "" {
			token = os.Getenv(gh.TokenEnv)
		}
		return runbook.NewGitHubSource(gh.RepoURL, token, gh.ResolvedCacheTTL(time.Hour), gh.AllowedDomains), nil
	}

	switch cfg.Cloud.Provider {
	case config.CloudProviderLocal:
		return runbook.NewLocalSource(cfg.Cloud.Local.Directory), nil
	case config.CloudProviderAWS:
		client := s3.NewFromConfig(*awsCfg)
		return runbook.NewS3Source(client, cfg.Cloud.AWS.Bucket, cfg.Cloud.AWS.Prefix), nil
	default:
		return nil, errUnsupportedCloudProvider(cfg.Cloud.Provider)
	}
}

type errUnknownLLMProvider config.LLMProviderName

func (e errUnknownLLMProvider) Error() string { return "unknown llm provider: " + string(e) }

type errUnsupportedCloudProvider config.CloudProvider

func (e errUnsupportedCloudProvider) Error() string {
	return "runbook source not implemented for cloud provider: " + string(e)
}

type noopMetadataProvider struct{}

func (noopMetadataProvider) GetInstance(_ context.Context, id string) (*enrich.ResourceMetadata, error) {
	return &enrich.ResourceMetadata{ID: id}, nil
}

type noopMetricsProvider struct{}

func (noopMetricsProvider) FetchMetrics(_ context.Context, _ string, _ time.Duration) ([]enrich.MetricSample, error) {
	return nil, nil
}

type noopLogsProvider struct{}

func (noopLogsProvider) FetchLogs(_ context.Context, _ string, _ time.Duration, _ string) ([]enrich.LogEvent, error) {
	return nil, nil
}
