package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the wiki coordinates and report settings loaded from a YAML
// config file. Secrets (PAT, OpenAI API key) come from the environment, never
// from the file.
type Config struct {
	Organization string `yaml:"organization"`
	Project      string `yaml:"project"`
	Wiki         string `yaml:"wiki"`
	Username     string `yaml:"username"`

	TopN        int `yaml:"top_n"`
	DaysWindow  int `yaml:"days_window"`
	ArticleDays int `yaml:"article_days"`

	OpenAI OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig points at the Azure OpenAI deployment used for article
// summaries.
type OpenAIConfig struct {
	BaseURL    string `yaml:"base_url"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
}

// LoadConfig reads and validates the YAML config file, applying defaults for
// optional report settings.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	if cfg.DaysWindow <= 0 {
		cfg.DaysWindow = 30
	}
	if cfg.ArticleDays <= 0 {
		cfg.ArticleDays = 30
	}

	if cfg.Organization == "" || cfg.Project == "" || cfg.Wiki == "" {
		return nil, fmt.Errorf("config must set organization, project and wiki")
	}

	return cfg, nil
}

// Endpoint returns the pagesbatch URL for the configured wiki.
func (c *Config) Endpoint() string {
	return fmt.Sprintf(
		"https://dev.azure.com/%s/%s/_apis/wiki/wikis/%s/pagesbatch?api-version=7.0",
		c.Organization, c.Project, c.Wiki)
}
