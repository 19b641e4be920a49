// Package stocktaking runs inventory sessions. While a session is active
// every article starts as pending and is marked counted once touched.
package stocktaking

import "time"

// Session is one stocktaking run. Stop is nil while it is active.
type Session struct {
	ID    int64      `db:"id" bson:"_id,omitempty"`
	Start time.Time  `db:"start" bson:"start"`
	Stop  *time.Time `db:"stop" bson:"stop,omitempty"`
}

// Active reports whether the session has not been stopped.
func (s Session) Active() bool {
	return s.Stop == nil
}

// Status is the externally visible session state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
