package ports

// EventPublisher sends a JSON body to a broker exchange. Satisfied by
// rabbitmq.MQPublisher; injected so services stay testable without a broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
