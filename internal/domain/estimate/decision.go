package estimate

import "strings"

// Decision is a tagged variant describing a driver's verdict on a
// request. It is only constructed through Accept and Reject so the
// status-conditional fields stay consistent: a rejection always carries
// the sentinel price, an acceptance carries the driver's price.
type Decision struct {
	status Status
	price  int64
	reason string
}

// Accept builds an ACCEPTED decision. A missing price defaults to 0.
func Accept(price int64, reason string) Decision {
	if price < 0 {
		price = 0
	}
	return Decision{status: StatusAccepted, price: price, reason: strings.TrimSpace(reason)}
}

// Reject builds a REJECTED decision with the sentinel price.
func Reject(reason string) Decision {
	return Decision{status: StatusRejected, price: RejectPrice, reason: strings.TrimSpace(reason)}
}

// Status returns the decision's target status.
func (d Decision) Status() Status { return d.status }

// Price returns the decision's price (always RejectPrice for rejections).
func (d Decision) Price() int64 { return d.price }

// Reason returns the driver's free-text reason.
func (d Decision) Reason() string { return d.reason }

// Accepted reports whether the decision is an acceptance.
func (d Decision) Accepted() bool { return d.status == StatusAccepted }
