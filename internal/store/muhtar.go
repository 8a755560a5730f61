package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"mtys/internal/normalize"
	"mtys/internal/utils"
	"mtys/pkg/types"
)

const muhtarPageSize = 1000

var muhtarColumns = utils.StructTagValues(types.MuhtarInfo{}, utils.ColumnTag)

type MuhtarRepository struct {
	pool *pgxpool.Pool
	norm *normalize.Normalizer
}

func NewMuhtarRepository(pool *pgxpool.Pool, norm *normalize.Normalizer) *MuhtarRepository {
	return &MuhtarRepository{pool: pool, norm: norm}
}

// All reads the full directory in fixed-size pages and folds names to their
// match form (trimmed, Turkish upper) on the way out, so callers can compare
// directly.
func (r *MuhtarRepository) All(ctx context.Context) ([]types.MuhtarInfo, error) {

	all := make([]types.MuhtarInfo, 0)

	for offset := uint64(0); ; offset += muhtarPageSize {
		query, args, err := psql().Select(muhtarColumns...).From(muhtarTableName).
			OrderBy("ilce_adi ASC", "mahalle_adi ASC").
			Offset(offset).
			Limit(muhtarPageSize).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to generate muhtar query: %w", err)
		}

		var page []types.MuhtarInfo
		if err := pgxscan.Select(ctx, r.pool, &page, query, args...); err != nil {
			return nil, fmt.Errorf("failed to fetch muhtar page at %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		for _, row := range page {
			all = append(all, types.MuhtarInfo{
				IlceAdi:        normalize.MatchKey(row.IlceAdi),
				MahalleAdi:     normalize.MatchKey(row.MahalleAdi),
				MuhtarAdi:      strings.TrimSpace(row.MuhtarAdi),
				MuhtarTelefonu: strings.TrimSpace(row.MuhtarTelefonu),
			})
		}

		if len(page) < muhtarPageSize {
			break
		}
	}

	return all, nil
}

// Replace swaps the whole directory for the given rows: delete-all plus
// insert, in one transaction so a failed upload cannot leave the table empty.
// This is a total replace, never a merge.
func (r *MuhtarRepository) Replace(ctx context.Context, rows []types.MuhtarInfo) error {

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin muhtar replace: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery, _, err := psql().Delete(muhtarTableName).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate muhtar delete query: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteQuery); err != nil {
		return fmt.Errorf("failed to clear muhtar data: %w", err)
	}

	// chunked multi-row inserts; districts upper-cased on write, the
	// neighborhood is stored as entered
	for start := 0; start < len(rows); start += 500 {
		end := start + 500
		if end > len(rows) {
			end = len(rows)
		}

		insert := psql().Insert(muhtarTableName).Columns(muhtarColumns...)
		for _, row := range rows[start:end] {
			insert = insert.Values(
				r.norm.District(row.IlceAdi),
				r.norm.Neighborhood(row.MahalleAdi),
				strings.TrimSpace(row.MuhtarAdi),
				strings.TrimSpace(row.MuhtarTelefonu),
			)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate muhtar insert query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert muhtar data: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit muhtar replace: %w", err)
	}

	return nil
}
