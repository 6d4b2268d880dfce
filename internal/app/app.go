package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/inventory-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/inventory-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/inventory-backend/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/inventory-backend/internal/infrastructure/minio"
	"github.com/DRSN-tech/inventory-backend/internal/infrastructure/reconcile"
	s3Repo "github.com/DRSN-tech/inventory-backend/internal/repository/minio"
	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter/generated"
	"github.com/DRSN-tech/inventory-backend/internal/repository/redis"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/clients"
	"github.com/DRSN-tech/inventory-backend/pkg/closer"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/DRSN-tech/inventory-backend/pkg/postgres"
	"github.com/DRSN-tech/inventory-backend/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	forcedTimeout   = 5 * time.Second
)

// App — корень композиции: поднимает зависимости, HTTP-сервер и фоновые воркеры.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server

	// Отменяется при остановке и прерывает фоновую очистку изображений.
	bgCtx    context.Context
	bgCancel context.CancelFunc

	outboxWorker    *kafka.OutboxWorker
	reconcileWorker *reconcile.Worker
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	a := &App{
		cfg:      cfg,
		logger:   logger,
		closer:   closer.NewCloser(forcedTimeout),
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}

	if err := a.init(); err != nil {
		a.shutdown()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := a.initPGDB(ctx)
	if err != nil {
		return err
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return e.Wrap("failed to initialize minio client", err)
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio); err != nil {
		return e.Wrap("failed to initialize MinIO bucket", err)
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	if err := redisClient.Ping(ctx); err != nil {
		return e.Wrap("failed to connect to redis", err)
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(startupTimeout); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl())
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.NewCategoryConverterImpl())
	pendingRepo := pgdb.NewPendingImageRepo(db.Pool)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverterImpl())
	lockRepo := redis.NewLockRepo(redisClient)
	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)

	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger, a.bgCtx)
	a.closer.Add("minio cleanup", imagesInfra.WaitForCleanup)

	productUC := usecase.NewProductUC(
		productRepo,
		categoryRepo,
		pendingRepo,
		outboxRepo,
		tr.NewManager(db.Pool),
		imagesInfra,
		a.logger,
		usecase.ProductOptions{PurgeReplacedImages: a.cfg.Product.PurgeReplacedImages},
	)

	categoryUC := usecase.NewCategoryUC(categoryRepo, a.logger)

	a.outboxWorker = kafka.NewOutboxWorker(
		outboxRepo, a.logger, producer, db.Dsn, pgdb.OutboxChannel,
		a.cfg.Kafka.OutboxBatchSize, a.cfg.Kafka.OutboxProcessingTimeout,
	)
	a.closer.AddFunc("outbox worker", a.outboxWorker.Stop)

	if a.cfg.Reconcile.Enabled {
		reconcileUC := usecase.NewImageReconcileUC(pendingRepo, productRepo, lockRepo, imagesInfra, usecase.ReconcileOptions{
			GracePeriod: a.cfg.Reconcile.GracePeriod,
			BatchSize:   a.cfg.Reconcile.BatchSize,
			LockKey:     a.cfg.Reconcile.LockKey,
			LockTTL:     a.cfg.Reconcile.LockTTL,
		}, a.logger)
		a.reconcileWorker = reconcile.NewWorker(reconcileUC, a.cfg.Reconcile.Interval, a.logger)
		a.closer.AddFunc("reconcile worker", a.reconcileWorker.Stop)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger, a.cfg.Http).Init(productUC, categoryUC, reg)

	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	return nil
}

// Run запускает сервер и воркеры и блокируется до сигнала остановки или падения сервера.
func (a *App) Run() error {
	a.outboxWorker.Start(a.bgCtx)
	if a.reconcileWorker != nil {
		a.reconcileWorker.Start(a.bgCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		errCh <- a.httpSrv.Run()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		if appErr != nil {
			a.logger.Errorf(appErr, "HTTP server fatal error")
		}
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.shutdown()
	a.logger.Infof("Application shutdown complete")

	return appErr
}

// shutdown закрывает ресурсы в обратном порядке регистрации: сначала сервер, затем воркеры, затем клиенты.
func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}
	a.bgCancel()
}

func (a *App) initPGDB(ctx context.Context) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, a.cfg.Db)
	if err != nil {
		return nil, e.Wrap("failed to connect to database", err)
	}
	a.closer.AddFunc("postgres", db.Close)

	if err := db.RunMigrations(a.logger); err != nil {
		return nil, e.Wrap("failed to run migrations", err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, e.Wrap("failed to ping database", err)
	}

	return db, nil
}
