package countries

// Status is the lifecycle stage of the most recent load attempt.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusReceived Status = "received"
	StatusRejected Status = "rejected"
)

// Settled reports whether the status is the outcome of a finished attempt.
func (s Status) Settled() bool {
	return s == StatusReceived || s == StatusRejected
}

// Summary is a lightweight projection of the Dataset State for display.
// Error is non-nil exactly when Status is StatusRejected.
type Summary struct {
	Status Status  `json:"status"`
	Error  *string `json:"error"`
	Count  int     `json:"count"`
}
