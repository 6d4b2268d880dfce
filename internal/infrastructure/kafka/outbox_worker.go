package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/jitter"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
)

const (
	notificationWait   = 30 * time.Second
	reconnectBase      = 2 * time.Second
	reconnectMax       = 30 * time.Second
	defaultOutboxBatch = 10
	defaultProcessing  = 5 * time.Minute
)

// OutboxWorker публикует события из outbox в Kafka. Новые события приходят через LISTEN/NOTIFY,
// а при каждом таймауте ожидания очередь проверяется ещё раз, чтобы не потерять пропущенные уведомления.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	dbConnStr string
	channel   string
	batchSize int
	// Через это время событие в processing считается брошенным и выдаётся снова
	processingTimeout time.Duration
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	dbConnStr string,
	channel string,
	batchSize int,
	processingTimeout time.Duration,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = defaultOutboxBatch
	}
	if processingTimeout <= 0 {
		processingTimeout = defaultProcessing
	}

	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
		channel:   channel,
		batchSize: batchSize,

		processingTimeout: processingTimeout,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.logger.Infof("Draining pending outbox events on startup...")
		w.drain(ctx)
		w.listenOutboxNotifications(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for attempt := 0; ctx.Err() == nil; attempt++ {
		conn, err := w.connect(ctx)
		if err != nil {
			w.logger.Warnf("outbox listener connect failed: %v", err)
			if !jitter.Sleep(ctx.Done(), jitter.ExponentialBackoff(reconnectBase, reconnectMax, attempt, jitter.DefaultJitter)) {
				return
			}
			continue
		}

		attempt = 0
		err = w.waitLoop(ctx, conn)
		_ = conn.Close(context.WithoutCancel(ctx))
		if err == nil || ctx.Err() != nil {
			return
		}

		w.logger.Warnf("outbox listener connection lost: %v. Reconnecting...", err)
	}
}

func (w *OutboxWorker) connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, w.dbConnStr)
	if err != nil {
		return nil, e.Wrap("failed to connect for LISTEN", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{w.channel}.Sanitize()); err != nil {
		_ = conn.Close(ctx)
		return nil, e.Wrap("failed to LISTEN", err)
	}

	w.logger.Infof("Subscribed to '%s' channel", w.channel)
	return conn, nil
}

// waitLoop ждёт уведомления до отмены контекста. Возвращает ошибку, если соединение потеряно.
func (w *OutboxWorker) waitLoop(ctx context.Context, conn *pgx.Conn) error {
	for {
		waitCtx, cancel := context.WithTimeout(ctx, notificationWait)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if ctx.Err() != nil {
			return nil
		}

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				w.drain(ctx)
				continue
			}
			return err
		}

		if notif.Channel == w.channel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

// drain публикует события пачками, пока очередь не опустеет или публикация не начнёт отказывать.
func (w *OutboxWorker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		published, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("outbox batch failed: %v", err)
			return
		}
		if published == 0 {
			return
		}
	}
}

// processBatch возвращает количество опубликованных событий. После временного сбоя событие
// возвращается в очередь, после окончательного отказа брокера помечается как failed.
func (w *OutboxWorker) processBatch(ctx context.Context) (int, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize, time.Now().Add(-w.processingTimeout))
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.handleFailure(ctx, event, err)
			continue
		}

		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
		published++
	}

	return published, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	return w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.ProductID, event.Payload))
}

func (w *OutboxWorker) handleFailure(ctx context.Context, event *usecase.OutboxEvent, err error) {
	if isRetryableError(err) {
		w.logger.Warnf("Temporary Kafka failure for event %s, will retry: %v", event.EventID, err)
		if err := w.repo.ReturnToPending(ctx, event.ID); err != nil {
			w.logger.Warnf("return to pending failed: %v", err)
		}
		return
	}

	w.logger.Errorf(err, "Permanent Kafka failure for event %s, marking as failed", event.EventID)
	if err := w.repo.MarkAsFailed(ctx, event.ID, err.Error()); err != nil {
		w.logger.Warnf("mark failed failed: %v", err)
	}
}

// isRetryableError отличает временные сбои сети и брокера от отказов, которые повтор не исправит.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		for _, we := range writeErrs {
			if we != nil && !isRetryableError(we) {
				return false
			}
		}
		return true
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
