package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"mtys/internal/normalize"
	"mtys/internal/utils"
	"mtys/pkg/types"
)

// TalepNoPrefix plus a zero-padded 4-digit counter forms the human-readable
// request number (MTYS-0001). Strictly increasing at creation time.
const TalepNoPrefix = "MTYS"

var requestColumns = utils.StructTagValues(types.Request{}, utils.ColumnTag)

type RequestRepository struct {
	pool *pgxpool.Pool
	norm *normalize.Normalizer
	logs *LogRepository
	now  func() time.Time
}

func NewRequestRepository(pool *pgxpool.Pool, norm *normalize.Normalizer, logs *LogRepository) *RequestRepository {
	return &RequestRepository{pool: pool, norm: norm, logs: logs, now: time.Now}
}

func (r *RequestRepository) All(ctx context.Context) ([]*types.Request, error) {

	query, args, err := psql().Select(requestColumns...).From(requestTableName).
		OrderBy("talep_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate requests query: %w", err)
	}

	var requests = make([]*types.Request, 0)
	if err := pgxscan.Select(ctx, r.pool, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	return requests, nil
}

func (r *RequestRepository) ByID(ctx context.Context, requestID string) (*types.Request, error) {

	query, args, err := psql().Select(requestColumns...).From(requestTableName).
		Where(sq.Eq{"id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request query: %w", err)
	}

	var request = new(types.Request)
	err = pgxscan.Get(ctx, r.pool, request, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrRequestNotFound
	}

	return request, nil
}

// Create inserts a new request and always appends a "create" log entry
// listing every field. The talep no is assigned here unless the caller
// brought one (bulk imports of historical exports do).
func (r *RequestRepository) Create(ctx context.Context, input *types.RequestInput) (*types.Request, error) {

	if err := input.Validate(); err != nil {
		return nil, err
	}

	talepNo := strings.TrimSpace(input.TalepNo)
	if talepNo == "" {
		next, err := r.nextTalepNo(ctx)
		if err != nil {
			return nil, err
		}
		talepNo = next
	}

	today := r.now().Format(normalize.DateLayout)

	request := &types.Request{
		ID:                  utils.NanoID(),
		TalepNo:             talepNo,
		TalebiOlusturan:     input.TalebiOlusturan,
		IlceAdi:             r.norm.District(input.IlceAdi),
		MahalleAdi:          r.norm.District(input.MahalleAdi),
		MuhtarAdi:           input.MuhtarAdi,
		MuhtarTelefonu:      input.MuhtarTelefonu,
		TalebinGelisSekli:   input.TalebinGelisSekli,
		TalepTarihi:         r.norm.Date(input.TalepTarihi),
		TalepKonusu:         r.norm.Topic(input.TalepKonusu),
		Aciklama:            input.Aciklama,
		Degerlendirme:       input.Degerlendirme,
		DegerlendirmeSonucu: input.DegerlendirmeSonucu,
		GuncellemeTarihi:    today,
		Guncelleyen:         input.Guncelleyen,
	}

	query, args, err := psql().Insert(requestTableName).
		SetMap(utils.StructToMap(request, utils.ColumnTag)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert request query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	err = r.logs.Append(ctx, &types.LogEntry{
		RequestID:   request.ID,
		Action:      types.LogActionCreate,
		Changes:     CreateChanges(request),
		Guncelleyen: request.Guncelleyen,
	})
	if err != nil {
		return nil, fmt.Errorf("request %s created but log append failed: %w", request.TalepNo, err)
	}

	return request, nil
}

// Update applies the submitted field set over the stored record, diffs old
// against new on the normalized values and appends an "update" log entry only
// when something actually changed. A blank request date keeps the stored one.
func (r *RequestRepository) Update(ctx context.Context, requestID string, input *types.RequestInput) (*types.Request, error) {

	if err := input.Validate(); err != nil {
		return nil, err
	}

	old, err := r.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	updated := *old
	updated.TalebiOlusturan = input.TalebiOlusturan
	updated.IlceAdi = r.norm.District(input.IlceAdi)
	updated.MahalleAdi = r.norm.District(input.MahalleAdi)
	updated.MuhtarAdi = input.MuhtarAdi
	updated.MuhtarTelefonu = input.MuhtarTelefonu
	updated.TalebinGelisSekli = input.TalebinGelisSekli
	updated.TalepKonusu = r.norm.Topic(input.TalepKonusu)
	updated.Aciklama = input.Aciklama
	updated.Degerlendirme = input.Degerlendirme
	updated.DegerlendirmeSonucu = input.DegerlendirmeSonucu
	updated.Guncelleyen = input.Guncelleyen
	updated.GuncellemeTarihi = r.now().Format(normalize.DateLayout)

	if strings.TrimSpace(input.TalepTarihi) == "" {
		updated.TalepTarihi = old.TalepTarihi
	} else {
		updated.TalepTarihi = r.norm.Date(input.TalepTarihi)
	}

	changes := DiffRequests(old, &updated)

	updateMap := utils.StructToMap(&updated, utils.ColumnTag)
	delete(updateMap, "id")

	query, args, err := psql().Update(requestTableName).
		SetMap(updateMap).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update request query for request %s: %w", requestID, err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	if len(changes) > 0 {
		err = r.logs.Append(ctx, &types.LogEntry{
			RequestID:   requestID,
			Action:      types.LogActionUpdate,
			Changes:     changes,
			Guncelleyen: input.Guncelleyen,
		})
		if err != nil {
			return nil, fmt.Errorf("request %s updated but log append failed: %w", updated.TalepNo, err)
		}
	}

	return &updated, nil
}

// Delete removes the given requests and appends one "delete" log entry per
// record. The talep numbers are fetched first so the entries can reference
// the human identifier after the rows are gone.
func (r *RequestRepository) Delete(ctx context.Context, requestIDs []string, actor string) (int, error) {

	if len(requestIDs) == 0 {
		return 0, nil
	}
	if actor == "" {
		actor = "Sistem (Toplu Silme)"
	}

	query, args, err := psql().Select("id", "talep_no").From(requestTableName).
		Where(sq.Eq{"id": requestIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate delete lookup query: %w", err)
	}

	var doomed []*struct {
		ID      string `db:"id"`
		TalepNo string `db:"talep_no"`
	}
	if err := pgxscan.Select(ctx, r.pool, &doomed, query, args...); err != nil {
		return 0, fmt.Errorf("failed to fetch requests for deletion: %w", err)
	}

	query, args, err = psql().Delete(requestTableName).
		Where(sq.Eq{"id": requestIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate delete request query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("failed to delete requests: %w", err)
	}

	for _, record := range doomed {
		err = r.logs.Append(ctx, &types.LogEntry{
			RequestID:   record.ID,
			Action:      types.LogActionDelete,
			Changes:     DeleteChanges(record.TalepNo),
			Guncelleyen: actor,
		})
		if err != nil {
			return len(doomed), fmt.Errorf("request %s deleted but log append failed: %w", record.TalepNo, err)
		}
	}

	return len(doomed), nil
}

// Stats feeds the dashboard cards: total plus per-topic, per-outcome and
// per-district counts.
func (r *RequestRepository) Stats(ctx context.Context) (*types.RequestStats, error) {

	stats := new(types.RequestStats)

	countQuery, _, err := psql().Select("count(*)").From(requestTableName).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate count query: %w", err)
	}
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	groups := []struct {
		column string
		dest   *[]types.CountRow
	}{
		{"talep_konusu", &stats.ByKonu},
		{"degerlendirme_sonucu", &stats.BySonuc},
		{"ilce_adi", &stats.ByIlce},
	}
	for _, group := range groups {
		query, _, err := psql().
			Select(group.column+` AS label`, "count(*) AS count").
			From(requestTableName).
			GroupBy(group.column).
			OrderBy("count DESC", "label ASC").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s stats query: %w", group.column, err)
		}
		if err := pgxscan.Select(ctx, r.pool, group.dest, query); err != nil {
			return nil, fmt.Errorf("failed to fetch %s stats: %w", group.column, err)
		}
	}

	return stats, nil
}

// nextTalepNo parses the current maximum and increments. Ordering on the
// talep_no text column is correct because the numeric part is zero-padded.
func (r *RequestRepository) nextTalepNo(ctx context.Context) (string, error) {

	query, _, err := psql().Select("talep_no").From(requestTableName).
		OrderBy("talep_no DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to generate talep no query: %w", err)
	}

	var last string
	err = pgxscan.Get(ctx, r.pool, &last, query)
	if err != nil && !pgxscan.NotFound(err) {
		return "", fmt.Errorf("failed to fetch last talep no: %w", err)
	}

	next := 1
	if last != "" {
		if _, suffix, found := strings.Cut(last, "-"); found {
			if n, convErr := strconv.Atoi(suffix); convErr == nil {
				next = n + 1
			}
		}
	}

	return FormatTalepNo(next), nil
}

func FormatTalepNo(n int) string {
	return fmt.Sprintf("%s-%04d", TalepNoPrefix, n)
}
