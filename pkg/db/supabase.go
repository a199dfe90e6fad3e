package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds configuration for a Supabase-hosted search replica.
type SupabaseConfig struct {
	// SupabaseURL is the project URL, e.g. "https://[project-ref].supabase.co".
	SupabaseURL string

	// SupabaseKey is the API key (service_role for server-side use).
	SupabaseKey string

	// Password is the database password, not the API key. Required for a
	// direct Postgres connection; without it the client is SDK-only.
	Password string
}

// SupabaseClient provides access to a Supabase project: the SDK for REST
// access and, when the database password is configured, a direct Postgres
// connection. Replication needs the direct connection.
type SupabaseClient struct {
	db  *sql.DB
	sdk *supabase.Client
	cfg SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initializes the SDK client and, when a password is configured, the
// direct database connection. At least one of the two must come up.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.SupabaseURL == "" {
		return fmt.Errorf("supabase URL is required")
	}

	if c.cfg.SupabaseKey != "" {
		sdk, err := supabase.NewClient(c.cfg.SupabaseURL, c.cfg.SupabaseKey, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.sdk = sdk
	}

	if c.cfg.Password != "" {
		if err := c.connectDirect(ctx); err != nil {
			if c.sdk != nil {
				// SDK-only mode still works for callers that don't need SQL.
				return nil
			}
			return err
		}
	}

	if c.db == nil && c.sdk == nil {
		return fmt.Errorf("either a database password or an API key must be provided")
	}
	return nil
}

// connectDirect opens a Postgres connection to the project database.
func (c *SupabaseClient) connectDirect(ctx context.Context) error {
	dsn, err := c.directDSN()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open supabase postgres: %w", err)
	}
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	db.SetConnMaxLifetime(pgConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping supabase postgres: %w", err)
	}

	c.db = db
	return nil
}

// directDSN derives the Postgres DSN from the project URL and password.
// The prepared statement cache is disabled because Supabase's pooler rejects
// repeated statement names when batches run in parallel.
func (c *SupabaseClient) directDSN() (string, error) {
	parsed, err := url.Parse(c.cfg.SupabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	// Host format: [project-ref].supabase.co
	ref, _, ok := strings.Cut(parsed.Host, ".")
	if !ok || ref == "" {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}

	return fmt.Sprintf(
		"postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require&statement_cache_capacity=0&default_query_exec_mode=simple_protocol",
		url.QueryEscape(c.cfg.Password), ref,
	), nil
}

// Close closes the direct database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the direct connection, or nil in SDK-only mode.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// HasDirectDB reports whether a direct database connection is available.
func (c *SupabaseClient) HasDirectDB() bool {
	return c.db != nil
}

// SDK returns the Supabase SDK client, or nil if no API key was configured.
func (c *SupabaseClient) SDK() *supabase.Client {
	return c.sdk
}
