// internal/game/history.go
package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/sirupsen/logrus"
)

// HistoryEntry is one accepted state change. Version is the state version the change
// produced.
type HistoryEntry struct {
	ActionType string                 `json:"action_type"`
	ActionData map[string]interface{} `json:"action_data"`
	ActorID    uuid.UUID              `json:"actor_id"`
	Timestamp  time.Time              `json:"timestamp"`
	Version    int                    `json:"version"`
}

// Recorder receives every accepted change, typically to forward it to the historian.
type Recorder interface {
	Record(ctx context.Context, rec models.ActionRecord) error
}

// recordTimeout bounds how long a recorder may take per record.
const recordTimeout = 2 * time.Second

// commit bumps the version, appends a history entry and hands the record to the
// recorder. It is the only place the version changes.
func (s *State) commit(actor uuid.UUID, actionType string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	now := s.clock()
	s.Version++
	s.LastUpdated = now
	s.History = append(s.History, HistoryEntry{
		ActionType: actionType,
		ActionData: data,
		ActorID:    actor,
		Timestamp:  now,
		Version:    s.Version,
	})
	s.log.WithFields(logrus.Fields{"action": actionType, "version": s.Version}).Debug("state committed")

	if s.recorder == nil {
		return
	}
	rec := models.ActionRecord{
		SessionID:     s.SessionID,
		Version:       s.Version,
		ActorID:       actor,
		ActionType:    actionType,
		ActionPayload: copyFields(data),
		Timestamp:     now.UnixMilli(),
	}
	go func(r Recorder, rec models.ActionRecord, log *logrus.Entry) {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := r.Record(ctx, rec); err != nil {
			log.WithError(err).WithField("version", rec.Version).Error("failed to record action")
		}
	}(s.recorder, rec, s.log)
}

func copyFields(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
