package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/kilianp07/cyclecast/core/metrics"
	"github.com/kilianp07/cyclecast/core/train"
	"github.com/kilianp07/cyclecast/infra/mqtt"
)

type Config struct {
	Dataset  DatasetConfig      `json:"dataset"`
	Training train.Config       `json:"training"`
	Metrics  coremetrics.Config `json:"metrics"`
	MQTT     mqtt.Config        `json:"mqtt"`
	Output   OutputConfig       `json:"output"`
	Logging  LoggingConfig      `json:"logging"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("CYCLECAST_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "cyclecast_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Dataset.SetDefaults()
	cfg.Training.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Output.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Dataset.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Training.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
