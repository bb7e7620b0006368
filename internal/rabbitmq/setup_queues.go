package rabbitmq

// Очередь и ключ маршрутизации для событий решений по заявкам.
const (
	LoanDecisionQueue      = "notifications.loan_decision"
	LoanDecisionRoutingKey = "loan_decision"
)

// QueueConfig описывает очередь и её ключ маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает список очередей конвейера уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: LoanDecisionQueue, RoutingKey: LoanDecisionRoutingKey},
	}
}
