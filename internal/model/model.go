package model

// Dated is implemented by every record that is bucketed by a calendar date.
type Dated interface {
	// AnchorDate returns the record's temporal anchor as sent by the server.
	AnchorDate() string
}
