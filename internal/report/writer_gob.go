package report

import (
	"Go2NetTemplates/internal/config"
	"Go2NetTemplates/internal/factory"
	"Go2NetTemplates/internal/model"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

func init() {
	factory.RegisterWriter("gob", func(def config.WriterDef, _ *config.Config, logger *zap.Logger) (model.Writer, error) {
		return NewGobWriter(def.File.RootPath, logger), nil
	})
}

// SummaryData holds the metadata of a written report.
type SummaryData struct {
	Source         string `json:"source"`
	TotalPackets   int    `json:"total_packets"`
	TotalTemplates int    `json:"total_templates"`
	TopTemplate    string `json:"top_template,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// GobWriter writes template summaries to disk in gob format, next to a
// JSON summary file.
type GobWriter struct {
	rootPath string
	logger   *zap.Logger
}

// NewGobWriter creates a new gob writer.
func NewGobWriter(rootPath string, logger *zap.Logger) *GobWriter {
	return &GobWriter{rootPath: rootPath, logger: logger}
}

func (w *GobWriter) Name() string {
	return "gob"
}

// Write stores the templates as <root>/<timestamp>/templates.gob.
func (w *GobWriter) Write(r *model.Report, timestamp string) error {
	dir := filepath.Join(w.rootPath, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	filePath := filepath.Join(dir, "templates.gob")
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create report file '%s': %w", filePath, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(r.Templates); err != nil {
		return fmt.Errorf("failed to encode templates to gob for file '%s': %w", filePath, err)
	}

	summary := SummaryData{
		Source:         r.Source,
		TotalPackets:   r.Packets,
		TotalTemplates: len(r.Templates),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	if len(r.Templates) > 0 {
		summary.TopTemplate = r.Templates[0].Signature
	}
	summaryFilePath := filepath.Join(dir, "summary.json")
	summaryFile, err := os.Create(summaryFilePath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer summaryFile.Close()

	jsonEncoder := json.NewEncoder(summaryFile)
	jsonEncoder.SetIndent("", "  ")
	if err := jsonEncoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary to json: %w", err)
	}

	w.logger.Info("Wrote template snapshot",
		zap.Int("templates", len(r.Templates)),
		zap.String("dir", dir))
	return nil
}

// ReadGob loads the templates written by GobWriter.
func ReadGob(filePath string) ([]model.TemplateSummary, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var templates []model.TemplateSummary
	if err := gob.NewDecoder(file).Decode(&templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates from '%s': %w", filePath, err)
	}
	return templates, nil
}
