package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-qr-orderform/internal/aws"
	"github.com/imrishuroy/go-qr-orderform/internal/catalog"
	"github.com/imrishuroy/go-qr-orderform/internal/config"
	"github.com/imrishuroy/go-qr-orderform/internal/handlers"
	"github.com/imrishuroy/go-qr-orderform/internal/logger"
	"github.com/imrishuroy/go-qr-orderform/internal/orders"
	"github.com/imrishuroy/go-qr-orderform/internal/qr"
	"github.com/imrishuroy/go-qr-orderform/internal/validation"
)

const serviceName = "order-form"

func setupRouter(cfg handlers.HandlerConfig, staticDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(cfg.Logger))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Static("/public", staticDir)

	handlers.RegisterOrdersRoutes(r, cfg)

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("service_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var clients *aws.AWSClients
	if cfg.NeedsAWS() {
		var err error
		if clients, err = aws.NewAWSClients(ctx); err != nil {
			return fmt.Errorf("init aws clients: %w", err)
		}
	}

	cat, err := loadCatalog(ctx, cfg, clients)
	if err != nil {
		return err
	}
	log.Info("catalog_loaded", slog.Int("items", cat.Len()))

	encoder := qr.NewEncoder(cfg.QRSize, cfg.EncodeTimeout)
	hcfg := handlers.HandlerConfig{
		Catalog:          cat,
		Pipeline:         orders.NewPipeline(cat, encoder, log),
		Validator:        validation.New(),
		StrictValidation: cfg.StrictValidation,
		Logger:           log,
	}
	if cfg.OrdersQueueURL != "" {
		hcfg.Feed = aws.NewPublisher(clients.SQS, cfg.OrdersQueueURL)
	}
	if cfg.MetricsNamespace != "" {
		hcfg.Metrics = aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace)
	}

	r := setupRouter(hcfg, cfg.StaticDir)

	// started by the Lambda runtime: serve API Gateway events instead of listening
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		adapter := ginadapter.New(r)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return nil
	}

	return serve(ctx, &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}, log)
}

func loadCatalog(ctx context.Context, cfg config.Config, clients *aws.AWSClients) (*catalog.Catalog, error) {
	if cfg.CatalogTable != "" {
		c, err := catalog.LoadTable(ctx, clients.DynamoDB, cfg.CatalogTable)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return c, nil
	}
	c, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("service_started", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("graceful_shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
