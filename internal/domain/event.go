package domain

import "time"

// ScheduleChangedEvent is published after every committed batch save and
// consumed by the audit worker.
type ScheduleChangedEvent struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	OccurredAt time.Time      `json:"occurredAt"`
	Upserted   int            `json:"upserted"`
	Deleted    int            `json:"deleted"`
	Items      []ScheduleCell `json:"items"`
}

// ScheduleEventsQueue is the durable queue both the API and the audit worker
// declare.
const ScheduleEventsQueue = "schedule_events"
