package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Amaradona-max/football-serie-a/internal/config"
	"github.com/Amaradona-max/football-serie-a/internal/infrastructure/archive"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second

	maxTracedQueryBytes = 512
)

// openArchiveDB opens the postgres archive with query tracing and checks it is reachable.
func openArchiveDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := archive.PostgresDSN(cfg.DBURL, archive.DSNOptions{
		ApplicationName: cfg.ServiceName,
		ConnectTimeout:  cfg.DBConnectTimeout,
	})

	opts := []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(traceQuery),
	}
	if name := archive.DatabaseName(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping archive db %s: %w", archive.DatabaseName(cfg.DBURL), err)
	}
	return db, nil
}

// traceQuery collapses whitespace in SQL recorded on spans and caps its size.
func traceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= maxTracedQueryBytes {
		return query
	}
	cut := maxTracedQueryBytes
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
