package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizify/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// InstrumentDB installs the otelgorm plugin plus callbacks that flag slow
// statements on the active span. Variables are kept out of spans unless
// DBLogFullSQL is set.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, dbSystem string, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}

	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = defaultSlowQueryThreshold
	}
	if err := registerSlowQueryCallbacks(db, thresh); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", dbSystem),
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", thresh),
	)
	return nil
}

func registerSlowQueryCallbacks(db *gorm.DB, thresh time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateStatement(tx, thresh) }

	cb := db.Callback()
	steps := []struct {
		name string
		err  error
	}{
		{"create", errors.Join(
			cb.Create().Before("gorm:create").Register("bizify:before_create", before),
			cb.Create().After("gorm:create").Register("bizify:after_create", after))},
		{"query", errors.Join(
			cb.Query().Before("gorm:query").Register("bizify:before_query", before),
			cb.Query().After("gorm:query").Register("bizify:after_query", after))},
		{"update", errors.Join(
			cb.Update().Before("gorm:update").Register("bizify:before_update", before),
			cb.Update().After("gorm:update").Register("bizify:after_update", after))},
		{"delete", errors.Join(
			cb.Delete().Before("gorm:delete").Register("bizify:before_delete", before),
			cb.Delete().After("gorm:delete").Register("bizify:after_delete", after))},
		{"raw", errors.Join(
			cb.Raw().Before("gorm:raw").Register("bizify:before_raw", before),
			cb.Raw().After("gorm:raw").Register("bizify:after_raw", after))},
	}
	for _, s := range steps {
		if s.err != nil {
			return fmt.Errorf("failed to register %s callbacks: %w", s.name, s.err)
		}
	}
	return nil
}

func annotateStatement(tx *gorm.DB, thresh time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
		span.SetStatus(codes.Error, tx.Error.Error())
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > thresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

// RegisterPoolMetrics publishes connection pool gauges read on each
// collection cycle.
func RegisterPoolMetrics(meter metric.Meter, db *gorm.DB) (metric.Registration, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	conns, err := meter.Int64ObservableGauge("bizify_db_pool_connections",
		metric.WithDescription("Database pool connections by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool gauge: %w", err)
	}
	maxConns, err := meter.Int64ObservableGauge("bizify_db_pool_connections_max",
		metric.WithDescription("Maximum open database connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool max gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("bizify_db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool wait counter: %w", err)
	}

	state := attribute.Key("state")
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(conns, int64(s.Idle), metric.WithAttributes(state.String("idle")))
		o.ObserveInt64(conns, int64(s.InUse), metric.WithAttributes(state.String("in_use")))
		o.ObserveInt64(maxConns, int64(s.MaxOpenConnections))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, conns, maxConns, waits)
}
