package contracts

import "time"

// Envelope adds cross-cutting headers all messages may carry.
type Envelope struct {
	CorrelationID string    `json:"correlation_id,omitempty"` // Correlation for tracing across services
	Producer      string    `json:"producer,omitempty"`       // Producer service name, e.g. "api-service"
	SentAt        time.Time `json:"sent_at,omitempty"`        // ISO-8601 send time (UTC)
}

// EstimateDecidedMessage announces a driver's decision on a request to
// the request owner.
type EstimateDecidedMessage struct {
	EstimateID int64  `json:"estimate_id"`
	RequestID  int64  `json:"request_id"`
	DriverID   int64  `json:"driver_id"`
	OwnerID    int64  `json:"owner_id"`
	Status     string `json:"status"` // ACCEPTED | REJECTED | PENDING (new pool estimate)
	Price      int64  `json:"price"`
	Reason     string `json:"reason,omitempty"`
	Envelope   `json:"envelope"`
}

// RequestCreatedMessage announces a new moving request to interested drivers.
type RequestCreatedMessage struct {
	RequestID  int64     `json:"request_id"`
	OwnerID    int64     `json:"owner_id"`
	MovingType string    `json:"moving_type"`
	MovingDate time.Time `json:"moving_date"`
	Origin     string    `json:"origin"`
	Envelope   `json:"envelope"`
}
