package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing settings.
type DBTracingConfig struct {
	Enabled bool
	// LogFullSQL keeps query variables in span statements. Development only.
	LogFullSQL         bool
	SlowQueryThreshold time.Duration
	DBSystem           string // postgresql or sqlite
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin on db and flags queries
// slower than cfg.SlowQueryThreshold on their span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return nil
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { markSlowQuery(tx, cfg.SlowQueryThreshold) }

	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("retail:timing_create", before) },
		func() error { return cb.Query().Before("gorm:query").Register("retail:timing_query", before) },
		func() error { return cb.Update().Before("gorm:update").Register("retail:timing_update", before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("retail:timing_delete", before) },
		func() error { return cb.Row().Before("gorm:row").Register("retail:timing_row", before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("retail:timing_raw", before) },
		func() error { return cb.Create().After("gorm:create").Before("otel:after:create").Register("retail:slow_create", after) },
		func() error { return cb.Query().After("gorm:query").Before("otel:after:query").Register("retail:slow_query", after) },
		func() error { return cb.Update().After("gorm:update").Before("otel:after:update").Register("retail:slow_update", after) },
		func() error { return cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("retail:slow_delete", after) },
		func() error { return cb.Row().After("gorm:row").Before("otel:after:row").Register("retail:slow_row", after) },
		func() error { return cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("retail:slow_raw", after) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return nil
}

func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
