package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrpro/internal/platform/events"
	"hrpro/internal/requestctx"
)

type Entry struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
}

// DB is the subset of *pgxpool.Pool the audit trail needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Service persists an audit entry for every write and announces it as a
// domain event.
type Service struct {
	DB        DB
	Publisher events.Publisher
}

func New(db DB, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{DB: db, Publisher: publisher}
}

// Record stores the change and publishes it with action as the event type.
// Request id and client address come from ctx.
func (s *Service) Record(ctx context.Context, action, entityType, entityID string, before, after any) error {
	var beforeJSON, afterJSON []byte
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return errors.Wrap(err, "marshal before")
		}
		beforeJSON = payload
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return errors.Wrap(err, "marshal after")
		}
		afterJSON = payload
	}

	requestID := requestctx.RequestID(ctx)
	if _, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (action, entity_type, entity_id, before_json, after_json, request_id, ip)
    VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
  `, action, entityType, entityID, beforeJSON, afterJSON, requestID, requestctx.ClientIP(ctx)); err != nil {
		return errors.Wrap(err, "insert audit event")
	}

	evt := events.New(action, entityType, entityID, after)
	evt.RequestID = requestID
	return s.Publisher.Publish(ctx, evt)
}

func (s *Service) List(ctx context.Context, filter Filter, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query, args := buildQuery(filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query audit events")
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.RequestID, &e.IP, &e.CreatedAt, &e.Before, &e.After); err != nil {
			return nil, errors.Wrap(err, "scan audit event")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func buildQuery(filter Filter) (string, []any) {
	query := `SELECT id::text, action, entity_type, entity_id, COALESCE(request_id, ''), COALESCE(ip, ''),
    created_at, before_json, after_json FROM audit_events WHERE true`
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		query += fmt.Sprintf(" AND entity_id = $%d", len(args))
	}
	return query, args
}
