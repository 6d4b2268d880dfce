package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/DRSN-tech/inventory-backend/internal/cfg"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

// Producer публикует события продуктов в Kafka. Ключом сообщения служит id продукта,
// поэтому события одного продукта попадают в одну партицию по порядку.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    cfg.OutboxBatchSize,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

func (p *Producer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   productKey(req.ProductID),
		Value: req.Payload,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// EnsureTopic создаёт топик, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		p.logger.Infof("kafka topic %s created", p.cfg.Topic)
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func productKey(productID int64) []byte {
	return []byte(strconv.FormatInt(productID, 10))
}
