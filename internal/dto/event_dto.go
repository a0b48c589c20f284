package dto

import "time"

// ReportEventMessage is the wire format of report lifecycle events.
type ReportEventMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
