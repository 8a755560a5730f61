package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"mtys/internal/utils"
	"mtys/pkg/types"
)

var logColumns = utils.StructTagValues(types.LogEntry{}, utils.ColumnTag)

// LogRepository appends and reads audit entries. There are deliberately no
// update or delete methods: entries are immutable once written and survive
// the request they reference.
type LogRepository struct {
	pool *pgxpool.Pool
}

func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

func (r *LogRepository) Append(ctx context.Context, entry *types.LogEntry) error {

	if entry.ID == "" {
		entry.ID = utils.NanoID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	query, args, err := psql().Insert(logTableName).
		SetMap(utils.StructToMap(entry, utils.ColumnTag)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert log query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}

	return nil
}

func (r *LogRepository) ForRequest(ctx context.Context, requestID string) ([]*types.LogEntry, error) {

	query, args, err := psql().Select(logColumns...).From(logTableName).
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("timestamp ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate logs query: %w", err)
	}

	var entries = make([]*types.LogEntry, 0)
	if err := pgxscan.Select(ctx, r.pool, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch logs for request %s: %w", requestID, err)
	}

	return entries, nil
}

func (r *LogRepository) All(ctx context.Context) ([]*types.LogEntry, error) {

	query, _, err := psql().Select(logColumns...).From(logTableName).
		OrderBy("timestamp DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all logs query: %w", err)
	}

	var entries = make([]*types.LogEntry, 0)
	if err := pgxscan.Select(ctx, r.pool, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to fetch all logs: %w", err)
	}

	return entries, nil
}
