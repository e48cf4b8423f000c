package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/adoption"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/agreement"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/cache"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/chainaudit"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/conversation"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/docstore"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/kafka"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/logger"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/notify"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/payment"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository/postgresql"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/server"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer database.GetPool().Close()

	db.EnsureAdmin(database, envOr("ADMIN_ORG_ID", "org-default"))

	requestRepo := postgresql.NewRequestRepo(database)
	animalRepo := postgresql.NewAnimalRepo(database)
	historyRepo := postgresql.NewHistoryRepo(database)
	agreementRepo := postgresql.NewAgreementRepo(database)
	paymentRepo := postgresql.NewPaymentRepo(database)
	conversationRepo := postgresql.NewConversationRepo(database)
	userRepo := postgresql.NewUserRepo(database)
	outboxRepo := postgresql.NewOutboxTaskRepo()

	animalCache := cache.NewAnimalCache(animalRepo)
	if err := animalCache.LoadInitialData(ctx); err != nil {
		log.Warn("animal cache preload failed", zap.Error(err))
	}

	docs, err := docstore.NewFileStore(envOr("DOC_DIR", "documents"), log)
	if err != nil {
		log.Fatal("document store init failed", zap.Error(err))
	}

	dispatch := notify.NewDispatchManager(notify.ConsoleSender{}, 2, 5, 500*time.Millisecond)
	dispatch.Start(ctx)

	notifyTopic := envOr("NOTIFY_TOPIC", "adoption_notifications")
	notifier := notify.NewNotifier(dispatch, outboxRepo, database, notifyTopic, log)

	agreements := agreement.NewService(agreementRepo, docs, log)
	conversations := conversation.NewService(conversationRepo, userRepo, log)

	orchestrator := adoption.New(adoption.Deps{
		Requests:      requestRepo,
		Animals:       animalRepo,
		History:       historyRepo,
		Payments:      paymentRepo,
		Users:         userRepo,
		Agreements:    agreements,
		Conversations: conversations,
		Notifier:      notifier,
		Gateway:       payment.NewConsoleGateway(),
		Audit:         chainaudit.NewLogRecorder(log),
		Cache:         animalCache,
		Logger:        log,
	})

	var producer kafka.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = kafka.NewWriterProducer(brokers)
	} else {
		producer = kafka.NewConsoleProducer()
	}
	publisher := kafka.NewPublisher(database, outboxRepo, producer, kafka.PublisherConfig{
		PollInterval: 2 * time.Second,
		BatchSize:    20,
		MaxAttempts:  5,
	})

	srv := server.New(orchestrator, userRepo, log)

	metricsSrv := &http.Server{
		Addr:    ":" + envOr("METRICS_PORT", "9090"),
		Handler: promhttp.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, envOr("HTTP_PORT", "9000"))
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		orchestrator.RunMeetingReminders(gctx, time.Hour)
		return nil
	})
	g.Go(func() error {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
		_ = metricsSrv.Shutdown(shutdownCtx)
		publisher.Shutdown()
		dispatch.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal("service exited with error", zap.Error(err))
	}
	log.Info("service stopped")
}
