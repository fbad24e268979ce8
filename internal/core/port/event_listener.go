package port

import "context"

// EventListenerPort - входящий адаптер очереди сообщений
type EventListenerPort interface {
	// Name - имя для логов приложения
	Name() string

	// Start блокируется, пока не отменен ctx или не оборвалось соединение
	Start(ctx context.Context) error

	Close() error
}
