package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/coldreach/internal/model"
)

// Config is the root configuration for coldreach.
type Config struct {
	LLM       LLMConfig
	Persona   PersonaConfig
	Scrape    ScrapeConfig
	Portfolio PortfolioConfig
}

// LLMConfig describes the hosted chat-completions endpoint.
type LLMConfig struct {
	BaseURL   string        // defaults to the Groq OpenAI-compatible endpoint
	Model     string        // model identifier, e.g. "llama-3.1-8b-instant"
	APIKey    string        // expanded from env vars by Load; may be resolved later
	APIKeyEnv string        // env var consulted when APIKey is empty
	Timeout   time.Duration // zero means no client-side timeout
	MaxTokens int           // zero leaves the server default
}

// PersonaConfig is the sender the cold email is written as.
type PersonaConfig struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Company string `yaml:"company"`
	About   string `yaml:"about"`
}

// ScrapeConfig controls careers page fetching.
type ScrapeConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// PortfolioConfig locates the portfolio catalog.
type PortfolioConfig struct {
	DBPath   string // sqlite database file
	MaxLinks int    // links returned per job
}

const (
	DefaultBaseURL   = "https://api.groq.com/openai/v1"
	DefaultModel     = "llama-3.1-8b-instant"
	DefaultAPIKeyEnv = "GROQ_API_KEY"

	defaultUserAgent = "Mozilla/5.0 (compatible; coldreach/1.0)"
	defaultAbout     = "AtliQ is an AI & Software Consulting company dedicated to facilitating the seamless integration of business processes through automated tools. Over our experience, we have empowered numerous enterprises with tailored solutions, fostering scalability, process optimization, cost reduction, and heightened overall efficiency."
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	LLM       rawLLMConfig       `yaml:"llm"`
	Persona   PersonaConfig      `yaml:"persona"`
	Scrape    rawScrapeConfig    `yaml:"scrape"`
	Portfolio rawPortfolioConfig `yaml:"portfolio"`
}

type rawLLMConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
	Timeout   string `yaml:"timeout"`
	MaxTokens int    `yaml:"max_tokens"`
}

type rawScrapeConfig struct {
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"`
}

type rawPortfolioConfig struct {
	DBPath   string `yaml:"db_path"`
	MaxLinks int    `yaml:"max_links"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:   DefaultBaseURL,
			Model:     DefaultModel,
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Persona: PersonaConfig{
			Name:    "Mohan",
			Title:   "business development executive",
			Company: "AtliQ",
			About:   defaultAbout,
		},
		Scrape: ScrapeConfig{
			UserAgent: defaultUserAgent,
			Timeout:   30 * time.Second,
		},
		Portfolio: PortfolioConfig{
			DBPath:   "portfolio.db",
			MaxLinks: 2,
		},
	}
}

// Load reads and parses the YAML config file at path, fills defaults, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes. ${VAR} references are expanded first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.LLM.BaseURL != "" {
		cfg.LLM.BaseURL = strings.TrimRight(raw.LLM.BaseURL, "/")
	}
	if raw.LLM.Model != "" {
		cfg.LLM.Model = raw.LLM.Model
	}
	if raw.LLM.APIKeyEnv != "" {
		cfg.LLM.APIKeyEnv = raw.LLM.APIKeyEnv
	}
	cfg.LLM.APIKey = strings.TrimSpace(raw.LLM.APIKey)
	cfg.LLM.MaxTokens = raw.LLM.MaxTokens
	if raw.LLM.Timeout != "" {
		d, err := time.ParseDuration(raw.LLM.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse llm.timeout %q: %w", raw.LLM.Timeout, err)
		}
		cfg.LLM.Timeout = d
	}

	if raw.Persona.Name != "" {
		cfg.Persona.Name = raw.Persona.Name
	}
	if raw.Persona.Title != "" {
		cfg.Persona.Title = raw.Persona.Title
	}
	if raw.Persona.Company != "" {
		cfg.Persona.Company = raw.Persona.Company
	}
	if raw.Persona.About != "" {
		cfg.Persona.About = strings.TrimSpace(raw.Persona.About)
	}

	if raw.Scrape.UserAgent != "" {
		cfg.Scrape.UserAgent = raw.Scrape.UserAgent
	}
	if raw.Scrape.Timeout != "" {
		d, err := time.ParseDuration(raw.Scrape.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse scrape.timeout %q: %w", raw.Scrape.Timeout, err)
		}
		cfg.Scrape.Timeout = d
	}

	if raw.Portfolio.DBPath != "" {
		cfg.Portfolio.DBPath = raw.Portfolio.DBPath
	}
	if raw.Portfolio.MaxLinks != 0 {
		cfg.Portfolio.MaxLinks = raw.Portfolio.MaxLinks
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.LLM.BaseURL, "http://") && !strings.HasPrefix(cfg.LLM.BaseURL, "https://") {
		return &model.ConfigError{Field: "llm.base_url", Err: fmt.Errorf("must be an http(s) URL, got %q", cfg.LLM.BaseURL)}
	}
	if cfg.LLM.Timeout < 0 {
		return &model.ConfigError{Field: "llm.timeout", Err: fmt.Errorf("must not be negative, got %v", cfg.LLM.Timeout)}
	}
	if cfg.LLM.MaxTokens < 0 {
		return &model.ConfigError{Field: "llm.max_tokens", Err: fmt.Errorf("must not be negative, got %d", cfg.LLM.MaxTokens)}
	}
	if cfg.Scrape.Timeout <= 0 {
		return &model.ConfigError{Field: "scrape.timeout", Err: fmt.Errorf("must be positive, got %v", cfg.Scrape.Timeout)}
	}
	if cfg.Portfolio.MaxLinks < 1 {
		return &model.ConfigError{Field: "portfolio.max_links", Err: fmt.Errorf("must be at least 1, got %d", cfg.Portfolio.MaxLinks)}
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
