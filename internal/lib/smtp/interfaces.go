package smtp

import "io"

// Client описывает минимальный набор операций SMTP-клиента,
// используемый сервисом отправки писем. Выделен в интерфейс для подмены в тестах.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
