package kafka

import (
	"context"
)

// MessageHandler обрабатывает одно сообщение из топика.
type MessageHandler func(ctx context.Context, msg Message) error

// Middleware оборачивает обработчик сообщений.
type Middleware func(next MessageHandler) MessageHandler

// Consumer читает сообщения из топика и передаёт их обработчику.
type Consumer interface {
	Consume(ctx context.Context, handler MessageHandler) error
}

// Producer отправляет сообщение с ключом в топик.
type Producer interface {
	Send(ctx context.Context, key, value []byte) error
}
