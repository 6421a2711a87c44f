package report

import (
	"Go2NetTemplates/internal/config"
	"Go2NetTemplates/internal/factory"
	"Go2NetTemplates/internal/model"
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"
)

const defaultTable = "template_fields"

const createTableStatement = `
CREATE TABLE IF NOT EXISTS %s (
    Timestamp      DateTime,
    Source         String,
    TemplateID     UInt32,
    Signature      String,
    Contributors   UInt64,
    Position       UInt32,
    FieldID        String,
    DistinctValues UInt64,
    Lengths        Array(UInt32),
    TopValues      Array(String),
    TopCounts      Array(UInt64)
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Source, Timestamp, TemplateID, Position);
`

func init() {
	factory.RegisterWriter("clickhouse", func(def config.WriterDef, _ *config.Config, logger *zap.Logger) (model.Writer, error) {
		return NewClickHouseWriter(def.ClickHouse, logger)
	})
}

// ClickHouseWriter inserts one row per template field.
type ClickHouseWriter struct {
	conn   driver.Conn
	table  string
	logger *zap.Logger
}

// NewClickHouseWriter connects to ClickHouse and ensures the table exists.
func NewClickHouseWriter(cfg config.ClickHouseConfig, logger *zap.Logger) (*ClickHouseWriter, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return newClickHouseWriter(conn, cfg.Table, logger)
}

// newClickHouseWriter creates the table on conn. conn is closed on failure.
func newClickHouseWriter(conn driver.Conn, table string, logger *zap.Logger) (*ClickHouseWriter, error) {
	if table == "" {
		table = defaultTable
	}
	if err := conn.Exec(context.Background(), fmt.Sprintf(createTableStatement, table)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	logger.Info("Connected to ClickHouse", zap.String("table", table))

	return &ClickHouseWriter{conn: conn, table: table, logger: logger}, nil
}

func connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

func (w *ClickHouseWriter) Name() string {
	return "clickhouse"
}

// fieldRows flattens a report into insert rows, in table column order.
func fieldRows(r *model.Report, ts time.Time) [][]any {
	var rows [][]any
	for _, t := range r.Templates {
		for _, f := range t.Fields {
			lengths := make([]uint32, len(f.Lengths))
			for i, l := range f.Lengths {
				lengths[i] = uint32(l)
			}
			values := make([]string, len(f.Top))
			counts := make([]uint64, len(f.Top))
			for i, vc := range f.Top {
				values[i] = vc.Value
				counts[i] = uint64(vc.Count)
			}
			rows = append(rows, []any{
				ts,
				r.Source,
				uint32(t.ID),
				t.Signature,
				uint64(t.Contributors),
				uint32(f.Position),
				f.ID,
				uint64(f.DistinctValues),
				lengths,
				values,
				counts,
			})
		}
	}
	return rows
}

// Write inserts the report as a single batch.
func (w *ClickHouseWriter) Write(r *model.Report, timestamp string) error {
	ts, err := time.ParseInLocation(model.TimestampLayout, timestamp, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
	}

	rows := fieldRows(r, ts)
	if len(rows) == 0 {
		return nil
	}

	batch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO "+w.table)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}
	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			return fmt.Errorf("failed to append field to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	w.logger.Info("Wrote template fields to ClickHouse",
		zap.Int("rows", len(rows)),
		zap.String("table", w.table))
	return nil
}

// Close closes the connection.
func (w *ClickHouseWriter) Close() error {
	return w.conn.Close()
}
