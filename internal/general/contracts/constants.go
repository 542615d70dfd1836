package contracts

// Exchanges
const (
	ExchangeNotifyTopic = "notify_topic"
)

// Queues
const (
	QueueEstimateDecisions = "estimate_decisions"
	QueueRequestCreated    = "request_created"
)

// Routing patterns
const (
	RouteEstimateDecidedPrefix = "notify.estimate." // {user_id}
	RouteRequestCreatedPrefix  = "notify.request."  // {moving_type}
)
