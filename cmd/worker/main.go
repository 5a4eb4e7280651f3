package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-workflow/internal/config"
	"github.com/unclebandit/campaign-workflow/internal/logger"
	"github.com/unclebandit/campaign-workflow/internal/provider"
	"github.com/unclebandit/campaign-workflow/internal/queue"
)

var errBrokerClosed = errors.New("broker connection closed")

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logr := logger.Must(cfg.Production(), cfg.LogLevel)
	defer logr.Sync()

	if cfg.Queue.URL == "" {
		logr.Fatal("AMQP_URL is required for the worker")
	}

	if err := run(cfg, logr); err != nil {
		logr.Fatal("worker stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := provider.New(cfg, logr)
	if err != nil {
		return fmt.Errorf("data provider: %w", err)
	}

	// Events land in the store's publish events table when there is one.
	var recorder queue.ApprovalRecorder = queue.LogRecorder{Log: logr}
	if w, ok := p.(*provider.Warehouse); ok {
		defer w.Close()
		recorder = provider.EventRecorder{Warehouse: w}
	}

	q, err := queue.DialAMQP(cfg.Queue.URL, logr)
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	defer q.Close()
	closed := q.NotifyClose()

	if err := queue.StartApprovalSubscriber(q, cfg.Queue.Topic, recorder, logr); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	logr.Info("worker running, waiting for approvals",
		zap.String("topic", cfg.Queue.Topic),
		zap.String("provider", string(p.Kind())),
	)
	if err := wait(ctx, closed); err != nil {
		return err
	}
	logr.Info("worker stopping")
	return nil
}

// wait blocks until shutdown is requested or the broker goes away.
func wait(ctx context.Context, closed <-chan *amqp.Error) error {
	select {
	case <-ctx.Done():
		return nil
	case amqpErr, ok := <-closed:
		if !ok || amqpErr == nil {
			return errBrokerClosed
		}
		return fmt.Errorf("%w: %v", errBrokerClosed, amqpErr)
	}
}
