package models

import "time"

// OutboxStatus is delivery status of outbox event
type OutboxStatus int

const (
	OutboxPending   OutboxStatus = 1
	OutboxCompleted OutboxStatus = 2
)

// OutboxEvent is an event written together with the order change it describes
type OutboxEvent struct {
	ID        int64
	Key       string
	Payload   []byte
	Status    OutboxStatus
	CreatedAt time.Time
}
