package report

import (
	"Go2NetTemplates/internal/config"
	"Go2NetTemplates/internal/factory"
	"Go2NetTemplates/internal/model"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

const defaultSubject = "templates.summary"

func init() {
	factory.RegisterWriter("nats", func(def config.WriterDef, _ *config.Config, logger *zap.Logger) (model.Writer, error) {
		return NewNATSWriter(def.NATS, logger)
	})
}

// NATSWriter publishes each template as a protobuf-encoded Struct.
type NATSWriter struct {
	nc      *nats.Conn
	subject string
	logger  *zap.Logger
}

// NewNATSWriter connects to the NATS server.
func NewNATSWriter(cfg config.NATSConfig, logger *zap.Logger) (*NATSWriter, error) {
	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	subject := cfg.Subject
	if subject == "" {
		subject = defaultSubject
	}
	logger.Info("Connected to NATS server", zap.String("url", url), zap.String("subject", subject))
	return &NATSWriter{nc: nc, subject: subject, logger: logger}, nil
}

func (w *NATSWriter) Name() string {
	return "nats"
}

// EncodeTemplate serializes one template summary for publishing.
func EncodeTemplate(source string, t model.TemplateSummary) ([]byte, error) {
	msg, err := SummaryStruct(source, t)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

// Write publishes every template, in rank order, and flushes.
func (w *NATSWriter) Write(r *model.Report, timestamp string) error {
	for _, t := range r.Templates {
		data, err := EncodeTemplate(r.Source, t)
		if err != nil {
			return fmt.Errorf("failed to encode template %d: %w", t.ID, err)
		}
		msg := nats.NewMsg(w.subject)
		msg.Header.Set("Run-Timestamp", timestamp)
		msg.Data = data
		if err := w.nc.PublishMsg(msg); err != nil {
			return fmt.Errorf("failed to publish template %d: %w", t.ID, err)
		}
	}
	if err := w.nc.Flush(); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}
	w.logger.Info("Published templates", zap.Int("templates", len(r.Templates)), zap.String("subject", w.subject))
	return nil
}

// Close drains and closes the NATS connection.
func (w *NATSWriter) Close() error {
	return w.nc.Drain()
}
