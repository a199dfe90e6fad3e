package db

import "database/sql"

// DBProvider is implemented by SQL-backed clients that expose a sql.DB handle.
// The replication flow accepts either PostgresClient or SupabaseClient through it.
type DBProvider interface {
	DB() *sql.DB
}
