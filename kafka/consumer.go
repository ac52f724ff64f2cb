package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/pandamarket/api/pkg/logger"
)

// FavoriteHandler handles favorite changed events
type FavoriteHandler func(ctx context.Context, event FavoriteChangedEvent) error

// CommentHandler handles comment created events
type CommentHandler func(ctx context.Context, event CommentCreatedEvent) error

// Consumer wraps a Kafka consumer group dispatching by topic
type Consumer struct {
	consumer sarama.ConsumerGroup
	groupID  string
	topics   []string

	mu              sync.RWMutex
	favoriteHandler FavoriteHandler
	commentHandler  CommentHandler
}

// NewConsumer creates a new Kafka consumer group
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{
		consumer: consumer,
		groupID:  groupID,
		topics:   topics,
	}, nil
}

// OnFavoriteChanged registers the handler for favorite events
func (c *Consumer) OnFavoriteChanged(handler FavoriteHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.favoriteHandler = handler
}

// OnCommentCreated registers the handler for comment events
func (c *Consumer) OnCommentCreated(handler CommentHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commentHandler = handler
}

// Start starts consuming messages until the context is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Logger.Info().Msg("Consumer context cancelled, stopping")
				return
			default:
				if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
					logger.Logger.Error().Err(err).Msg("Error from consumer")
				}
			}
		}
	}()

	go func() {
		for err := range c.consumer.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	// Extract trace context from Kafka headers
	carrier := propagation.MapCarrier{}
	for _, header := range message.Headers {
		key := string(header.Key)
		if key == "traceparent" || key == "tracestate" {
			carrier[key] = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	h.consumer.mu.RLock()
	favoriteHandler := h.consumer.favoriteHandler
	commentHandler := h.consumer.commentHandler
	h.consumer.mu.RUnlock()

	var err error
	switch message.Topic {
	case TopicFavoriteChanged:
		if favoriteHandler == nil {
			return
		}
		var event FavoriteChangedEvent
		if err = json.Unmarshal(message.Value, &event); err == nil {
			span.SetAttributes(attribute.String("event.type", event.EventType))
			err = favoriteHandler(ctx, event)
		}
	case TopicCommentCreated:
		if commentHandler == nil {
			return
		}
		var event CommentCreatedEvent
		if err = json.Unmarshal(message.Value, &event); err == nil {
			span.SetAttributes(attribute.String("event.type", event.EventType))
			err = commentHandler(ctx, event)
		}
	default:
		logger.Logger.Warn().Str("topic", message.Topic).Msg("Unknown topic")
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to handle event")
		logger.Logger.Error().
			Err(err).
			Str("topic", message.Topic).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to handle event")
		return
	}

	span.SetStatus(codes.Ok, "Event handled")
}
