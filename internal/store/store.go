// Package store is the only layer that talks to Postgres. One repository per
// entity; every read goes to the backing store, there is no caching in front
// of it.
package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	requestTableName = "mtys.requests"
	muhtarTableName  = "mtys.muhtar_info"
	logTableName     = "mtys.logs"
	userTableName    = "mtys.users"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
