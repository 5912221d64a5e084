package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/m04kA/SMC-ServiceDesk/pkg/requestid"
)

// reconnectDelay пауза между попытками переподключения после обрыва соединения
const reconnectDelay = 2 * time.Second

// dialFunc открывает соединение и канал, объявляет exchange и возвращает
// канал уведомлений о закрытии соединения
type dialFunc func(url, exchange string) (io.Closer, Channel, <-chan *amqp.Error, error)

// RabbitPublisher публикует события в topic exchange RabbitMQ
type RabbitPublisher struct {
	mu       sync.Mutex
	conn     io.Closer
	channel  Channel
	exchange string
	log      Logger

	url        string
	dial       dialFunc
	retryDelay time.Duration
	closing    bool
	done       chan struct{}
}

// Dial подключается к RabbitMQ и объявляет durable topic exchange.
// При обрыве соединения издатель переподключается в фоне
func Dial(url, exchange string, log Logger) (*RabbitPublisher, error) {
	p := NewRabbitPublisher(nil, exchange, log)
	p.url = url
	p.dial = dialAMQP
	p.retryDelay = reconnectDelay

	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialAMQP(url, exchange string) (io.Closer, Channel, <-chan *amqp.Error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return conn, ch, conn.NotifyClose(make(chan *amqp.Error, 1)), nil
}

// NewRabbitPublisher создает издателя поверх уже открытого канала
func NewRabbitPublisher(ch Channel, exchange string, log Logger) *RabbitPublisher {
	return &RabbitPublisher{
		channel:  ch,
		exchange: exchange,
		log:      log,
		done:     make(chan struct{}),
	}
}

func (p *RabbitPublisher) connect() error {
	conn, ch, closed, err := p.dial(p.url, p.exchange)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		_ = ch.Close()
		_ = conn.Close()
		return ErrNotConnected
	}
	p.conn = conn
	p.channel = ch
	p.mu.Unlock()

	p.log.Info("Connected to RabbitMQ, exchange=%s", p.exchange)

	go p.watch(closed)
	return nil
}

// watch ждет закрытия соединения и переподключается, пока издатель не закрыт
func (p *RabbitPublisher) watch(closed <-chan *amqp.Error) {
	var reason *amqp.Error
	select {
	case reason = <-closed:
	case <-p.done:
		return
	}

	p.mu.Lock()
	if p.closing {
		p.mu.Unlock()
		return
	}
	p.channel = nil
	p.conn = nil
	p.mu.Unlock()

	p.log.Warn("RabbitMQ connection lost: %v, reconnecting", reason)

	for attempt := 1; ; attempt++ {
		select {
		case <-p.done:
			return
		case <-time.After(p.retryDelay):
		}

		if err := p.connect(); err != nil {
			if errors.Is(err, ErrNotConnected) {
				return
			}
			p.log.Error("RabbitMQ reconnect attempt %d failed: %v", attempt, err)
			continue
		}
		p.log.Info("RabbitMQ reconnected after %d attempt(s)", attempt)
		return
	}
}

// Publish сериализует событие в JSON и публикует его с routing key = тип события
func (p *RabbitPublisher) Publish(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if event.CorrelationID == "" {
		event.CorrelationID = requestid.FromContext(ctx)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return ErrNotConnected
	}

	err = p.channel.Publish(
		p.exchange,
		string(event.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			MessageId:     event.ID.String(),
			CorrelationId: event.CorrelationID,
			Timestamp:     event.OccurredAt,
			Headers: amqp.Table{
				"event_type":   string(event.Type),
				"aggregate_id": event.AggregateID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}

	p.log.Info("Event published: %s aggregate_id=%d", event.Type, event.AggregateID)
	return nil
}

// Close закрывает канал и соединение и останавливает переподключение
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closing {
		p.closing = true
		close(p.done)
	}

	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

// NoopPublisher используется, когда RabbitMQ отключен в конфигурации
type NoopPublisher struct {
	log Logger
}

// NewNoopPublisher создает издателя, который только логирует события
func NewNoopPublisher(log Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

// Publish логирует событие и ничего не отправляет
func (p *NoopPublisher) Publish(_ context.Context, event Event) error {
	p.log.Info("Event skipped (rabbitmq disabled): %s aggregate_id=%d", event.Type, event.AggregateID)
	return nil
}

// Close ничего не делает
func (p *NoopPublisher) Close() error {
	return nil
}
