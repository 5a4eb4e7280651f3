// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/campaign-workflow/internal/config"
	"github.com/unclebandit/campaign-workflow/internal/controller"
	"github.com/unclebandit/campaign-workflow/internal/handler"
	"github.com/unclebandit/campaign-workflow/internal/logger"
	"github.com/unclebandit/campaign-workflow/internal/provider"
	"github.com/unclebandit/campaign-workflow/internal/queue"
	"github.com/unclebandit/campaign-workflow/internal/repository"
	"github.com/unclebandit/campaign-workflow/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logr := logger.Must(cfg.Production(), cfg.LogLevel)
	defer logr.Sync()

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := provider.New(cfg, logr)
	if err != nil {
		return err
	}
	if closer, ok := p.(io.Closer); ok {
		defer closer.Close()
	}

	q, err := approvalQueue(cfg, p, logr)
	if err != nil {
		return err
	}
	switch q := q.(type) {
	case io.Closer:
		defer q.Close()
	case *queue.InMemoryQueue:
		defer q.Drain()
	}

	campaignService := service.NewCampaignService(p, cfg.ComplianceTimeout, logr)
	workflowService := service.NewWorkflowService(repository.NewSessionRepository(), q, cfg.Queue.Topic, logr)

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		Log:             logr,
	}
	campaignHandler := &handler.CampaignHandler{
		Campaigns:    campaignService,
		Workflow:     workflowService,
		DashboardURL: cfg.Databricks.DashboardURL,
		Log:          logr,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Mount("/api", campaignController.Routes())
	r.Mount("/", campaignHandler.Routes())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server running",
			zap.String("addr", cfg.Addr),
			zap.String("provider", string(p.Kind())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logr.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// approvalQueue publishes to RabbitMQ when AMQP_URL is set, where cmd/worker
// records the events. Otherwise events are recorded in-process.
func approvalQueue(cfg config.Config, p provider.Provider, logr *zap.Logger) (queue.Queue, error) {
	if cfg.Queue.URL != "" {
		q, err := queue.DialAMQP(cfg.Queue.URL, logr)
		if err != nil {
			return nil, err
		}
		logr.Info("approvals published to broker", zap.String("topic", cfg.Queue.Topic))
		return q, nil
	}

	q := queue.NewInMemoryQueue(logr)
	if err := queue.StartApprovalSubscriber(q, cfg.Queue.Topic, approvalRecorder(p, logr), logr); err != nil {
		return nil, err
	}
	return q, nil
}

// approvalRecorder writes to the store's events table when there is one.
// The store connects on the first event, so startup never waits on it.
func approvalRecorder(p provider.Provider, logr *zap.Logger) queue.ApprovalRecorder {
	if w, ok := p.(*provider.Warehouse); ok {
		return provider.EventRecorder{Warehouse: w}
	}
	return queue.LogRecorder{Log: logr}
}
