package main

import (
	"Go2NetTemplates/internal/config"
	"Go2NetTemplates/internal/engine/manager"
	"Go2NetTemplates/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runFlags are shared by the commands that classify a capture.
type runFlags struct {
	configPath   string
	headerOffset int
	firstLayer   string
	topN         int
	maxWidth     int
	logLevel     string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().IntVar(&f.headerOffset, "header-offset", 14, "Bytes trimmed from each frame (14 skips Ethernet)")
	cmd.Flags().StringVar(&f.firstLayer, "first-layer", "auto", "First layer after the offset: auto, ipv4, ipv6, ethernet")
	cmd.Flags().IntVar(&f.topN, "top", 10, "Values kept per field (0 keeps all)")
	cmd.Flags().IntVar(&f.maxWidth, "max-width", 256, "Maximum table width (0 disables)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// load merges the config file with flags set on the command line.
func (f *runFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(f.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("header-offset") {
		cfg.Input.HeaderOffset = f.headerOffset
	}
	if flags.Changed("first-layer") {
		cfg.Decoder.FirstLayer = f.firstLayer
	}
	if flags.Changed("top") {
		cfg.Report.TopN = f.topN
	}
	if flags.Changed("max-width") {
		cfg.Report.MaxWidth = f.maxWidth
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	return cfg, cfg.Validate()
}

// run classifies a capture with the merged config.
func (f *runFlags) run(cmd *cobra.Command, capture string) (*config.Config, *manager.Result, *zap.Logger, error) {
	cfg, err := f.load(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	m, err := manager.NewManager(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	defer m.Close()

	result, err := m.Run(capture)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, result, logger, nil
}
