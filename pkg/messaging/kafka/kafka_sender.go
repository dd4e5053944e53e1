package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/erain9/limitbook/pkg/messaging"
	"github.com/segmentio/kafka-go"
)

// KafkaSender implements messaging.Sender using Kafka
type KafkaSender struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaSender creates a new Kafka execution feed sender
func NewKafkaSender(brokerAddr, topic string) (*KafkaSender, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerAddr),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaSender{
		writer: writer,
		topic:  topic,
	}, nil
}

// SendExecutionMessage sends an execution message to Kafka
func (k *KafkaSender) SendExecutionMessage(msg *messaging.ExecutionMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal execution message: %w", err)
	}

	kafkaMsg := kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: data,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(ctx, kafkaMsg); err != nil {
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka writer
func (k *KafkaSender) Close() error {
	return k.writer.Close()
}

// Ensure KafkaSender implements Sender
var _ messaging.Sender = (*KafkaSender)(nil)
