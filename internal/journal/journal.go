// Package journal records recipe searches for later analysis.
package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/recipebot/core/logger"
)

// Source names what triggered a search.
const (
	SourceCategory = "category"
	SourceSearch   = "search"
	SourceRecipes  = "recipes"
	SourcePage     = "page"
)

// Entry is one recorded search.
type Entry struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Source       string    `db:"source"`
	Query        string    `db:"query"`
	Diet         string    `db:"diet"`
	Cuisine      string    `db:"cuisine"`
	MaxReadyTime int       `db:"max_ready_time"`
	Results      int       `db:"results"`
	CreatedAt    time.Time `db:"created_at"`
}

// Recorder appends entries. It must not block the caller; failures are
// logged by the implementation and never returned.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Reader lists what a user searched for.
type Reader interface {
	Recent(ctx context.Context, userID int64, limit int) ([]Entry, error)
}

// Nop discards entries and has no history.
type Nop struct{}

// Record does nothing.
func (Nop) Record(context.Context, Entry) {}

// Recent returns no entries.
func (Nop) Recent(context.Context, int64, int) ([]Entry, error) { return nil, nil }

const queueSize = 64

type pending struct {
	ctx   context.Context
	entry Entry
}

// Postgres stores entries in the search_journal table. Record only queues;
// Run performs the inserts.
type Postgres struct {
	db      *sqlx.DB
	timeout time.Duration
	queue   chan pending
	insert  func(ctx context.Context, e Entry) error
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	p := &Postgres{db: db, timeout: 3 * time.Second, queue: make(chan pending, queueSize)}
	p.insert = p.insertRow
	return p
}

const insertEntry = `
INSERT INTO search_journal (user_id, source, query, diet, cuisine, max_ready_time, results)
VALUES (:user_id, :source, :query, :diet, :cuisine, :max_ready_time, :results)`

func (p *Postgres) insertRow(ctx context.Context, e Entry) error {
	_, err := p.db.NamedExecContext(ctx, insertEntry, e)
	return err
}

// Record queues e. A full queue drops the entry.
func (p *Postgres) Record(ctx context.Context, e Entry) {
	select {
	case p.queue <- pending{ctx: context.WithoutCancel(ctx), entry: e}:
	default:
		logger.Warn(ctx, "journal", "journal.drop", slog.String("source", e.Source))
	}
}

// Run writes queued entries until ctx is done, then flushes the backlog.
func (p *Postgres) Run(ctx context.Context) error {
	for {
		select {
		case item := <-p.queue:
			p.write(item)
		case <-ctx.Done():
			for {
				select {
				case item := <-p.queue:
					p.write(item)
				default:
					return nil
				}
			}
		}
	}
}

func (p *Postgres) write(item pending) {
	ctx, cancel := context.WithTimeout(item.ctx, p.timeout)
	defer cancel()

	start := time.Now()
	if err := p.insert(ctx, item.entry); err != nil {
		logger.Warn(ctx, "journal", "journal.record.fail",
			slog.String("source", item.entry.Source),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.Duration("took", time.Since(start)),
		)
		return
	}
	logger.Debug(ctx, "journal", "journal.record",
		slog.String("source", item.entry.Source),
		slog.Int("results", item.entry.Results),
		slog.Duration("took", time.Since(start)),
	)
}

// Recent returns the latest entries of a user, newest first.
func (p *Postgres) Recent(ctx context.Context, userID int64, limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var out []Entry
	err := p.db.SelectContext(ctx, &out, `
SELECT id, user_id, source, query, diet, cuisine, max_ready_time, results, created_at
FROM search_journal
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	return out, nil
}
