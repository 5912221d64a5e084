package events

import "errors"

var (
	// ErrNotConnected возвращается, когда соединение с брокером закрыто
	ErrNotConnected = errors.New("events publisher: not connected")

	// ErrConnect возвращается при ошибке подключения к RabbitMQ
	ErrConnect = errors.New("events publisher: failed to connect")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events publisher: failed to publish")
)
