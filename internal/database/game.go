// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/cattledrive/internal/game"
	"github.com/jason-s-yu/cattledrive/internal/models"
)

var (
	// ErrSessionNotFound is returned when no row exists for a session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrVersionConflict is returned by Save when the stored version is not the one
	// the caller last read.
	ErrVersionConflict = errors.New("session version conflict")
)

// Session statuses.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// gameEndAction is the history entry that closes a session.
const gameEndAction = "game_end"

// SessionRepository persists session snapshots and the action log.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a new session row holding the current state of s.
func (r *SessionRepository) Create(ctx context.Context, s *game.State) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", s.SessionID, err)
	}
	q := `
		INSERT INTO game_sessions (id, status, phase, version, state)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, q, s.SessionID, StatusInProgress, string(s.Phase), s.Version, data); err != nil {
		return fmt.Errorf("insert session %s: %w", s.SessionID, err)
	}
	return nil
}

// Load rebuilds a session from its stored snapshot.
func (r *SessionRepository) Load(ctx context.Context, id uuid.UUID, opts ...game.Option) (*game.State, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT state FROM game_sessions WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return game.Unmarshal(data, opts...)
}

// Save overwrites the stored snapshot with s, but only if the row is still at
// expectedVersion. A concurrent writer that got there first yields ErrVersionConflict.
func (r *SessionRepository) Save(ctx context.Context, s *game.State, expectedVersion int) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", s.SessionID, err)
	}
	status := StatusInProgress
	if s.Finished() {
		status = StatusCompleted
	}
	q := `
		UPDATE game_sessions
		SET state = $1, version = $2, phase = $3, status = $4, updated_at = NOW(),
			end_time = CASE WHEN $4 = 'completed' THEN NOW() ELSE end_time END
		WHERE id = $5 AND version = $6
	`
	tag, err := r.pool.Exec(ctx, q, data, s.Version, string(s.Phase), status, s.SessionID, expectedVersion)
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.SessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s expected version %d", ErrVersionConflict, s.SessionID, expectedVersion)
	}
	return nil
}

// AppendActions writes a batch of action records in one transaction. Records already
// stored are skipped, so a redelivered batch is harmless. A game_end record marks
// its session completed.
func (r *SessionRepository) AppendActions(ctx context.Context, recs []models.ActionRecord) error {
	if len(recs) == 0 {
		return nil
	}
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range recs {
			if err := insertActionTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insert action %s/%d: %w", rec.SessionID, rec.Version, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append actions: %w", err)
	}
	return nil
}

func insertActionTx(ctx context.Context, tx pgx.Tx, rec models.ActionRecord) error {
	payload, err := json.Marshal(rec.ActionPayload)
	if err != nil {
		return err
	}
	q := `
		INSERT INTO session_actions (session_id, version, actor_id, action_type, action_payload, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, version) DO NOTHING
	`
	at := time.UnixMilli(rec.Timestamp).UTC()
	if _, err := tx.Exec(ctx, q, rec.SessionID, rec.Version, rec.ActorID, rec.ActionType, payload, at); err != nil {
		return err
	}

	if rec.ActionType == gameEndAction {
		finalize := `
			UPDATE game_sessions
			SET status = 'completed', end_time = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`
		if _, err := tx.Exec(ctx, finalize, rec.SessionID); err != nil {
			return err
		}
	}
	return nil
}

// MarkAbandoned flags an in-progress session as abandoned.
func (r *SessionRepository) MarkAbandoned(ctx context.Context, id uuid.UUID) error {
	q := `
		UPDATE game_sessions
		SET status = 'abandoned', end_time = NOW()
		WHERE id = $1 AND status = 'in_progress'
	`
	return pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, id)
		return err
	})
}

// Status returns a session's lifecycle status.
func (r *SessionRepository) Status(ctx context.Context, id uuid.UUID) (string, error) {
	var status string
	err := r.pool.QueryRow(ctx, `SELECT status FROM game_sessions WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return status, err
}

// ActionCount returns how many action records are stored for a session.
func (r *SessionRepository) ActionCount(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM session_actions WHERE session_id = $1`, id).Scan(&n)
	return n, err
}
