// Package config loads the advisor's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/campuscore/advisor/pkg/advisor/internalerr"
)

// Config is the advisor configuration file.
type Config struct {
	DBPath       string `yaml:"db_path"`
	StoplistPath string `yaml:"stoplist"`

	Knowledge struct {
		ChunkSize int `yaml:"chunk_size"`
		TopK      int `yaml:"top_k"`
	} `yaml:"knowledge"`

	LLM struct {
		BaseURL    string `yaml:"base_url"`
		ChatModel  string `yaml:"chat_model"`
		EmbedModel string `yaml:"embed_model"`
		APIKey     string `yaml:"api_key"`
	} `yaml:"llm"`

	Student struct {
		Name  string  `yaml:"name"`
		ID    int     `yaml:"id"`
		Major string  `yaml:"major"`
		GPA   float64 `yaml:"gpa"`
	} `yaml:"student"`
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DBPath == "" {
		return cfg, fmt.Errorf("%w: db_path required", internalerr.ErrInvalidConfig)
	}
	return cfg, nil
}

// Stoplist is a YAML stopword list.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}
	return &sl, nil
}
