// Package importer drives bulk uploads: the muhtar directory replace and the
// sequential request import with (district, neighborhood) cross-referencing.
package importer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"mtys/internal/normalize"
	"mtys/pkg/types"
)

// ErrorPolicy is an explicit choice, not an accident: either collect failed
// rows and keep going, or stop at the first failure. Neither rolls back rows
// already created — each row is an independent store call.
type ErrorPolicy int

const (
	ContinueOnError ErrorPolicy = iota
	AbortOnError
)

type MuhtarStore interface {
	All(ctx context.Context) ([]types.MuhtarInfo, error)
	Replace(ctx context.Context, rows []types.MuhtarInfo) error
}

type RequestCreator interface {
	Create(ctx context.Context, input *types.RequestInput) (*types.Request, error)
}

// RowError ties a failure to its 1-based data row number.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

type Result struct {
	Imported int
	Failed   []RowError
}

type Importer struct {
	muhtars  MuhtarStore
	requests RequestCreator
	logger   *logrus.Logger
}

func New(muhtars MuhtarStore, requests RequestCreator, logger *logrus.Logger) *Importer {
	return &Importer{muhtars: muhtars, requests: requests, logger: logger}
}

// ReplaceMuhtars swaps the whole directory for the uploaded rows. Atomicity
// lives in the store; this is never a merge.
func (im *Importer) ReplaceMuhtars(ctx context.Context, rows []types.MuhtarInfo) error {
	if err := im.muhtars.Replace(ctx, rows); err != nil {
		return fmt.Errorf("replace muhtar data: %w", err)
	}

	im.logger.WithField("rows", len(rows)).Info("muhtar directory replaced")
	return nil
}

// ImportRequests loads the directory once, fills in the muhtar name and phone
// for each row by case-insensitive (district, neighborhood) lookup (empty
// strings when there is no match — that is not an error) and creates the
// requests one at a time, in input order.
func (im *Importer) ImportRequests(ctx context.Context, rows []types.RequestInput, policy ErrorPolicy, actor string) (*Result, error) {

	directory, err := im.muhtars.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load muhtar data: %w", err)
	}

	index := make(map[string]types.MuhtarInfo, len(directory))
	for _, m := range directory {
		index[matchKey(m.IlceAdi, m.MahalleAdi)] = m
	}

	result := new(Result)
	for i := range rows {
		row := rows[i]

		muhtar, ok := index[matchKey(row.IlceAdi, row.MahalleAdi)]
		if ok {
			row.MuhtarAdi = muhtar.MuhtarAdi
			row.MuhtarTelefonu = muhtar.MuhtarTelefonu
		} else {
			row.MuhtarAdi = ""
			row.MuhtarTelefonu = ""
		}

		if row.Guncelleyen == "" {
			row.Guncelleyen = actor
		}

		if _, err := im.requests.Create(ctx, &row); err != nil {
			rowErr := RowError{Row: i + 1, Err: err}
			im.logger.WithError(err).WithField("row", rowErr.Row).Warn("request import row failed")

			if policy == AbortOnError {
				result.Failed = append(result.Failed, rowErr)
				return result, rowErr
			}
			result.Failed = append(result.Failed, rowErr)
			continue
		}

		result.Imported++
	}

	im.logger.WithFields(logrus.Fields{
		"imported": result.Imported,
		"failed":   len(result.Failed),
	}).Info("request import finished")

	return result, nil
}

func matchKey(ilce, mahalle string) string {
	return normalize.MatchKey(ilce) + "\x00" + normalize.MatchKey(mahalle)
}
