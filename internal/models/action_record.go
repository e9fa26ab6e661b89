// internal/models/action_record.go
package models

import "github.com/google/uuid"

// ActionRecord is one accepted state change, as published to the historian queue.
type ActionRecord struct {
	SessionID     uuid.UUID              `json:"session_id"`
	Version       int                    `json:"version"`
	ActorID       uuid.UUID              `json:"actor_id"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"action_payload"`
	Timestamp     int64                  `json:"timestamp"` // epoch millis
}
