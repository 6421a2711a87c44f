package factory

import (
	"Go2NetTemplates/internal/config"
	"Go2NetTemplates/internal/model"
	"fmt"

	"go.uber.org/zap"
)

// WriterFactory creates a writer from its config entry.
type WriterFactory func(def config.WriterDef, cfg *config.Config, logger *zap.Logger) (model.Writer, error)

// registry holds the mapping of writer types to their factory functions.
var registry = make(map[string]WriterFactory)

// RegisterWriter registers a new writer type with its factory function.
func RegisterWriter(name string, factory WriterFactory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("writer type '%s' already registered", name))
	}
	registry[name] = factory
}

// Registered reports whether a writer type is known.
func Registered(name string) bool {
	_, ok := registry[name]
	return ok
}

// Create builds every enabled writer of the config.
func Create(cfg *config.Config, logger *zap.Logger) ([]model.Writer, error) {
	var writers []model.Writer

	for _, def := range cfg.Writers {
		if !def.Enabled {
			continue
		}
		logger.Info("Creating writer", zap.String("type", def.Type))

		factory, ok := registry[def.Type]
		if !ok {
			return nil, fmt.Errorf("unknown writer type: '%s'", def.Type)
		}

		writer, err := factory(def, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating writer type '%s': %w", def.Type, err)
		}

		writers = append(writers, writer)
	}

	return writers, nil
}
