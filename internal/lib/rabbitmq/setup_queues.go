package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации платёжных событий.
const (
	RoutingKeyCompleted = "completed"
	RoutingKeyFailed    = "failed"
)

// GetPaymentQueues возвращает очереди платёжных событий: успешные оплаты
// забирает выдача заказов, неуспешные — ручной разбор.
func GetPaymentQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "payment.completed", RoutingKey: RoutingKeyCompleted},
		{QueueName: "payment.failed", RoutingKey: RoutingKeyFailed},
	}
}
