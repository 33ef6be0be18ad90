package domain

// Status is the lifecycle state of an order. Transitions only ever move
// forward along the chain; there is no branching and no way back.
type Status string

const (
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

var statusChain = []Status{
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	for _, st := range statusChain {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered
}

// Next returns the unique successor of s. ok is false for the terminal
// state and for unknown states.
func (s Status) Next() (next Status, ok bool) {
	for i, st := range statusChain {
		if st == s && i+1 < len(statusChain) {
			return statusChain[i+1], true
		}
	}
	return "", false
}

// Progress returns how far along the lifecycle s is, as a percentage.
func (s Status) Progress() int {
	for i, st := range statusChain {
		if st == s {
			return (i + 1) * 100 / len(statusChain)
		}
	}
	return 0
}
