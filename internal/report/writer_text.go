package report

import (
	"Go2NetTemplates/internal/config"
	"Go2NetTemplates/internal/factory"
	"Go2NetTemplates/internal/model"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

func init() {
	factory.RegisterWriter("text", func(def config.WriterDef, cfg *config.Config, logger *zap.Logger) (model.Writer, error) {
		return NewTextWriter(def.File.RootPath, cfg.Report.MaxWidth, logger), nil
	})
}

// TextWriter writes the rendered tables of a report to a text file.
type TextWriter struct {
	rootPath string
	maxWidth int
	logger   *zap.Logger
}

// NewTextWriter creates a new text writer.
func NewTextWriter(rootPath string, maxWidth int, logger *zap.Logger) *TextWriter {
	return &TextWriter{rootPath: rootPath, maxWidth: maxWidth, logger: logger}
}

func (w *TextWriter) Name() string {
	return "text"
}

func (w *TextWriter) Write(r *model.Report, timestamp string) error {
	dir := filepath.Join(w.rootPath, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	filePath := filepath.Join(dir, "templates.txt")
	if err := os.WriteFile(filePath, []byte(Render(r, w.maxWidth)), 0644); err != nil {
		return fmt.Errorf("failed to write report file '%s': %w", filePath, err)
	}

	w.logger.Info("Wrote template tables",
		zap.Int("templates", len(r.Templates)),
		zap.String("path", filePath))
	return nil
}
