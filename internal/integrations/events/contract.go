package events

import "github.com/streadway/amqp"

// Logger интерфейс логгера издателя событий
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Channel часть *amqp.Channel, нужная издателю
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}
