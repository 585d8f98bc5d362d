package entities

import "time"

// QueueRole distinguishes queues the user created from queues they joined.
type QueueRole string

const (
	// QueueRoleOwned marks a queue created by the current user.
	QueueRoleOwned QueueRole = "owned"

	// QueueRoleJoined marks the user's place in someone else's queue.
	QueueRoleJoined QueueRole = "joined"
)

// QueueRecord represents one user's relationship (owner or participant)
// to a waiting line. Records are keyed by QueueID; identity fields
// (role, business metadata, token) never change after creation.
type QueueRecord struct {
	QueueID      string    `json:"queue_id"`
	Role         QueueRole `json:"role"`
	BusinessName string    `json:"business_name"`
	ServiceType  string    `json:"service_type"`
	Location     string    `json:"location"`

	// Participant-side fields, meaningful when Role is joined.
	Token       string     `json:"token,omitempty"`
	UserName    string     `json:"user_name,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Position    int        `json:"position"`
	WaitTime    int        `json:"wait_time"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`

	// Owner-side fields, meaningful when Role is owned.
	ServiceTime  int        `json:"service_time,omitempty"`
	Capacity     int        `json:"capacity,omitempty"`
	CurrentToken int        `json:"current_token,omitempty"`
	TotalServed  int        `json:"total_served,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// IsTracked reports whether the record is still being advanced by the
// position simulator: only joined records ahead of the counter move.
func (r *QueueRecord) IsTracked() bool {
	return r.Role == QueueRoleJoined && r.Position > 0
}

// IsTerminal reports whether a joined record has reached the front of
// the line. Terminal records are never mutated again.
func (r *QueueRecord) IsTerminal() bool {
	return r.Role == QueueRoleJoined && r.Position <= 0
}

// Clone returns an independent copy of the record so that callers can
// mutate it without racing the store's internal state.
func (r *QueueRecord) Clone() *QueueRecord {
	if r == nil {
		return nil
	}
	clone := *r
	if r.JoinedAt != nil {
		t := *r.JoinedAt
		clone.JoinedAt = &t
	}
	if r.CreatedAt != nil {
		t := *r.CreatedAt
		clone.CreatedAt = &t
	}
	return &clone
}
