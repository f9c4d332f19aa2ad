// Package inquiry records that a reply carried the contact call-to-action.
// Only the request id, mode, matched keyword and time are stored; message
// content never leaves the request.
package inquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/solution-hr/solution-chat/agent/contract"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Config is read with the INQUIRY prefix. An empty DSN disables recording.
type Config struct {
	DSN     string        `envconfig:"DSN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"2s"`
}

type Recorder interface {
	contractx.InquiryRecorder
	Close() error
}

// Open returns a Postgres recorder for cfg.DSN, or a no-op recorder when no
// DSN is configured.
func Open(ctx context.Context, cfg Config) (Recorder, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return NoopRecorder{}, nil
	}

	r := NewPostgresRecorder(dsn, cfg.Timeout)
	if err := r.Init(ctx); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, contractx.InquiryEvent) error { return nil }

func (NoopRecorder) Close() error { return nil }

type inquiryEventRow struct {
	bun.BaseModel `bun:"table:inquiry_events,alias:ie"`

	ID        int64     `bun:"id,pk,autoincrement"`
	RequestID string    `bun:"request_id,notnull"`
	Mode      string    `bun:"mode,notnull"`
	Keyword   string    `bun:"keyword,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

type PostgresRecorder struct {
	db      *bun.DB
	timeout time.Duration
}

var _ Recorder = (*PostgresRecorder)(nil)

// NewPostgresRecorder prepares a connection pool. No connection is made
// until the first query.
func NewPostgresRecorder(dsn string, timeout time.Duration) *PostgresRecorder {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &PostgresRecorder{
		db:      bun.NewDB(sqldb, pgdialect.New()),
		timeout: timeout,
	}
}

// Init creates the events table when it does not exist yet.
func (r *PostgresRecorder) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.createTableQuery().Exec(ctx); err != nil {
		return fmt.Errorf("create inquiry_events table: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Record(ctx context.Context, ev contractx.InquiryEvent) error {
	row, err := newRow(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.insertQuery(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert inquiry event: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Close() error {
	return r.db.Close()
}

func (r *PostgresRecorder) createTableQuery() *bun.CreateTableQuery {
	return r.db.NewCreateTable().Model((*inquiryEventRow)(nil)).IfNotExists()
}

func (r *PostgresRecorder) insertQuery(row *inquiryEventRow) *bun.InsertQuery {
	return r.db.NewInsert().Model(row)
}

func newRow(ev contractx.InquiryEvent) (*inquiryEventRow, error) {
	if strings.TrimSpace(ev.Keyword) == "" {
		return nil, fmt.Errorf("%w: inquiry keyword is empty", contractx.ErrValidation)
	}
	if ev.CreatedAt.IsZero() {
		return nil, errors.New("inquiry event has no timestamp")
	}
	return &inquiryEventRow{
		RequestID: ev.RequestID,
		Mode:      ev.Mode.String(),
		Keyword:   ev.Keyword,
		CreatedAt: ev.CreatedAt.UTC(),
	}, nil
}
