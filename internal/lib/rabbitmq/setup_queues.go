package rabbitmq

// QueueConfig связывает имя очереди с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Имена очередей и ключи маршрутизации уведомлений.
const (
	BillingSummaryQueue      = "notification.billing_summary"
	BillingSummaryRoutingKey = "billing.summary"
)

// GetNotificationQueues возвращает конфигурацию очередей для воркеров уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: BillingSummaryQueue, RoutingKey: BillingSummaryRoutingKey},
	}
}
