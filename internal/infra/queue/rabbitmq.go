package mq

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dappwork/marketplace/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DialFunc opens a broker connection. The publisher calls it again after the connection drops.
type DialFunc func() (*amqp.Connection, error)

// NewDialFunc dials with TLS 1.2+ when enabled in config or when the URL is amqps://.
func NewDialFunc(cfg *config.Config) DialFunc {
	return func() (*amqp.Connection, error) {
		url := cfg.RabbitMQ.URL
		if cfg.RabbitMQ.EnableTLS || strings.HasPrefix(url, "amqps://") {
			if strings.HasPrefix(url, "amqp://") {
				url = strings.Replace(url, "amqp://", "amqps://", 1)
			}
			return amqp.DialTLS(url, &tls.Config{MinVersion: tls.VersionTLS12})
		}
		return amqp.Dial(url)
	}
}

// tableCarrier adapts amqp.Table to TextMapCarrier for OpenTelemetry propagation
type tableCarrier struct {
	table amqp.Table
}

func (c tableCarrier) Get(key string) string {
	if val, ok := c.table[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
		return fmt.Sprintf("%v", val)
	}
	return ""
}

func (c tableCarrier) Set(key, value string) {
	c.table[key] = value
}

func (c tableCarrier) Keys() []string {
	keys := make([]string, 0, len(c.table))
	for k := range c.table {
		keys = append(keys, k)
	}
	return keys
}

type Publisher struct {
	mu   sync.Mutex
	dial DialFunc
	conn *amqp.Connection
	ch   *amqp.Channel

	log *zap.Logger
	cfg *config.Config
}

func NewPublisher(log *zap.Logger, cfg *config.Config, dial DialFunc) (*Publisher, error) {
	p := &Publisher{dial: dial, log: log, cfg: cfg}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect (re)opens the connection and channel and declares the events exchange.
// Callers hold p.mu or own p exclusively.
func (p *Publisher) connect() error {
	conn, err := p.dial()
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.cfg.RabbitMQ.ExchangeName.MarketplaceEvents, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Publisher) PublishJSON(ctx context.Context, exchangeName string, routingKey string, body any) error {
	b, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	tracer := otel.Tracer(p.cfg.App.Name)
	ctx, span := tracer.Start(ctx, "rabbitmq.publish",
		trace.WithAttributes(
			attribute.String("messaging.system", "rabbitmq"),
			attribute.String("messaging.destination", exchangeName),
			attribute.String("messaging.destination_kind", "exchange"),
			attribute.String("messaging.rabbitmq.routing_key", routingKey),
		))
	defer span.End()

	headers := make(amqp.Table)
	otel.GetTextMapPropagator().Inject(ctx, tableCarrier{table: headers})

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
		Headers:      headers,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.ch.IsClosed() {
		p.log.Warn("rabbitmq connection lost, redialing")
		if err := p.connect(); err != nil {
			span.RecordError(err)
			return err
		}
	}

	if err := p.ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, publishing); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(attribute.Int("messaging.message.body.size", len(b)))
	return nil
}
