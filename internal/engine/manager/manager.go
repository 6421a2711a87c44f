package manager

import (
	"Go2NetTemplates/internal/config"
	"Go2NetTemplates/internal/core/model"
	"Go2NetTemplates/internal/engine/protocol"
	"Go2NetTemplates/internal/engine/template"
	"Go2NetTemplates/internal/factory"
	summary "Go2NetTemplates/internal/model"
	_ "Go2NetTemplates/internal/report" // Registers report writers
	"Go2NetTemplates/pkg/pcap"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Result is the outcome of one run.
type Result struct {
	Templates []*template.Template
	Report    *summary.Report
	Timestamp string
}

// Manager runs classification over a capture and hands the report to
// the configured writers.
type Manager struct {
	cfg     *config.Config
	parser  protocol.Parser
	writers []summary.Writer
	logger  *zap.Logger
	now     func() time.Time
}

// NewManager creates a Manager with the parser and writers described by cfg.
func NewManager(cfg *config.Config, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	direction, err := model.ParseDirection(cfg.Decoder.Direction)
	if err != nil {
		return nil, err
	}
	parser, err := protocol.NewParser(protocol.Options{
		FirstLayer: cfg.Decoder.FirstLayer,
		Direction:  direction,
	})
	if err != nil {
		return nil, err
	}

	writers, err := factory.Create(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Manager{
		cfg:     cfg,
		parser:  parser,
		writers: writers,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Run reads the capture, classifies every packet and writes the report.
// Any read or decode error aborts the run before writers are called.
func (m *Manager) Run(pcapFilePath string) (*Result, error) {
	m.logger.Info("Reading packets", zap.String("path", pcapFilePath), zap.Int("header_offset", m.cfg.Input.HeaderOffset))
	packets, err := pcap.ReadFile(pcapFilePath, m.cfg.Input.HeaderOffset)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}

	result, err := m.Classify(filepath.Base(pcapFilePath), packets)
	if err != nil {
		return nil, err
	}
	return result, m.write(result)
}

// Classify groups packets into ranked templates and builds the report.
func (m *Manager) Classify(source string, packets []model.Buffer) (*Result, error) {
	registry := template.NewRegistry(m.parser, template.WithLogger(m.logger))
	if err := registry.Classify(packets); err != nil {
		return nil, err
	}

	templates := registry.Templates()
	report := &summary.Report{
		Source:    source,
		Packets:   registry.Packets(),
		Templates: make([]summary.TemplateSummary, len(templates)),
	}
	for i, t := range templates {
		report.Templates[i] = t.Summary(m.cfg.Report.TopN)
	}
	return &Result{
		Templates: templates,
		Report:    report,
		Timestamp: m.now().Format(summary.TimestampLayout),
	}, nil
}

// write hands the report to every writer. All writers run; the first
// error is returned.
func (m *Manager) write(result *Result) error {
	var firstErr error
	for _, w := range m.writers {
		if err := w.Write(result.Report, result.Timestamp); err != nil {
			m.logger.Error("Writer failed", zap.String("writer", w.Name()), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("writer %s: %w", w.Name(), err)
			}
		}
	}
	return firstErr
}

// Close releases writer connections.
func (m *Manager) Close() {
	for _, w := range m.writers {
		if c, ok := w.(io.Closer); ok {
			if err := c.Close(); err != nil {
				m.logger.Warn("Failed to close writer", zap.String("writer", w.Name()), zap.Error(err))
			}
		}
	}
}
