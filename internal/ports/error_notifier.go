package ports

import "context"

type ErrorNotifier interface {
	// Notify сообщает админу о запросе, завершившемся 500.
	// Не должен блокировать обработчик.
	Notify(ctx context.Context, op string, err error, details string) error
}
