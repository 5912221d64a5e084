package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceDesk/pkg/requestid"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &mockChannel{}
	var published amqp.Publishing
	ch.On("Publish", "service-desk", "request.confirmed", false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(4).(amqp.Publishing) }).
		Return(nil)

	p := NewRabbitPublisher(ch, "service-desk", nopLogger{})
	ctx := requestid.NewContext(context.Background(), "req-1")

	err := p.Publish(ctx, New(RequestConfirmed, 15, map[string]int64{"slot_id": 3}))

	require.NoError(t, err)
	ch.AssertExpectations(t)
	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, "req-1", published.CorrelationId)
	assert.NotEmpty(t, published.MessageId)

	var decoded Event
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	assert.Equal(t, RequestConfirmed, decoded.Type)
	assert.Equal(t, int64(15), decoded.AggregateID)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	ch := &mockChannel{}
	ch.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).
		Return(errors.New("channel closed"))

	p := NewRabbitPublisher(ch, "service-desk", nopLogger{})

	err := p.Publish(context.Background(), New(StockLow, 7, nil))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestRabbitPublisher_Closed(t *testing.T) {
	ch := &mockChannel{}
	ch.On("Close").Return(nil)

	p := NewRabbitPublisher(ch, "service-desk", nopLogger{})
	require.NoError(t, p.Close())

	err := p.Publish(context.Background(), New(StockLow, 7, nil))
	assert.ErrorIs(t, err, ErrNotConnected)
}

type fakeConn struct{}

func (fakeConn) Close() error { return nil }

// scriptedDialer выдает заранее подготовленные каналы и считает попытки подключения
type scriptedDialer struct {
	mu       sync.Mutex
	channels []Channel
	failures int
	attempts int
	closed   []chan *amqp.Error
}

func (d *scriptedDialer) dial(_, _ string) (io.Closer, Channel, <-chan *amqp.Error, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.attempts++
	if d.failures > 0 {
		d.failures--
		return nil, nil, nil, fmt.Errorf("%w: dial: connection refused", ErrConnect)
	}

	ch := d.channels[0]
	d.channels = d.channels[1:]
	notify := make(chan *amqp.Error, 1)
	d.closed = append(d.closed, notify)
	return fakeConn{}, ch, notify, nil
}

func (d *scriptedDialer) dropConnection(i int) {
	d.mu.Lock()
	notify := d.closed[i]
	d.mu.Unlock()
	notify <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker restarted"}
}

func (d *scriptedDialer) attemptCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts
}

func newScriptedPublisher(d *scriptedDialer) *RabbitPublisher {
	p := NewRabbitPublisher(nil, "service-desk", nopLogger{})
	p.dial = d.dial
	p.retryDelay = time.Millisecond
	return p
}

func TestRabbitPublisher_ReconnectsAfterConnectionLoss(t *testing.T) {
	first := &mockChannel{}
	first.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).
		Return(errors.New("channel closed")).Maybe()
	second := &mockChannel{}
	second.On("Publish", "service-desk", "stock.low", false, false, mock.Anything).Return(nil)
	second.On("Close").Return(nil)

	d := &scriptedDialer{channels: []Channel{first, second}}
	p := newScriptedPublisher(d)
	require.NoError(t, p.connect())

	// вторая попытка падает, третья успешна
	d.mu.Lock()
	d.failures = 1
	d.mu.Unlock()
	d.dropConnection(0)

	assert.Eventually(t, func() bool {
		return p.Publish(context.Background(), New(StockLow, 7, nil)) == nil
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 3, d.attemptCount())
	require.NoError(t, p.Close())
	second.AssertExpectations(t)
}

func TestRabbitPublisher_NotConnectedWhileReconnecting(t *testing.T) {
	first := &mockChannel{}
	first.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).
		Return(errors.New("channel closed")).Maybe()
	d := &scriptedDialer{channels: []Channel{first}}
	p := newScriptedPublisher(d)
	p.retryDelay = time.Hour
	require.NoError(t, p.connect())

	d.dropConnection(0)

	assert.Eventually(t, func() bool {
		return errors.Is(p.Publish(context.Background(), New(StockLow, 7, nil)), ErrNotConnected)
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, p.Close())
	assert.Equal(t, 1, d.attemptCount())
}

func TestRabbitPublisher_CloseStopsWatcher(t *testing.T) {
	first := &mockChannel{}
	first.On("Close").Return(nil)
	d := &scriptedDialer{channels: []Channel{first}}
	p := newScriptedPublisher(d)
	require.NoError(t, p.connect())

	require.NoError(t, p.Close())
	d.dropConnection(0)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, d.attemptCount())
	first.AssertExpectations(t)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(nopLogger{})
	assert.NoError(t, p.Publish(context.Background(), New(RequestSubmitted, 1, nil)))
	assert.NoError(t, p.Close())
}
