package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/coldreach/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coldreach.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
llm:
  base_url: https://llm.example.com/v1/
  model: test-model
  api_key: secret
  timeout: 45s
persona:
  name: Priya
  company: Acme
scrape:
  timeout: 10s
portfolio:
  db_path: /tmp/p.db
  max_links: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.BaseURL != "https://llm.example.com/v1" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != "test-model" {
		t.Errorf("Model = %q, want test-model", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.LLM.APIKey)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.LLM.Timeout)
	}
	if cfg.Persona.Name != "Priya" || cfg.Persona.Company != "Acme" {
		t.Errorf("Persona = %+v", cfg.Persona)
	}
	if cfg.Persona.Title != "business development executive" {
		t.Errorf("Persona.Title = %q, want default", cfg.Persona.Title)
	}
	if cfg.Scrape.Timeout != 10*time.Second {
		t.Errorf("Scrape.Timeout = %v, want 10s", cfg.Scrape.Timeout)
	}
	if cfg.Portfolio.DBPath != "/tmp/p.db" || cfg.Portfolio.MaxLinks != 3 {
		t.Errorf("Portfolio = %+v", cfg.Portfolio)
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.LLM.BaseURL, DefaultBaseURL)
	}
	if cfg.LLM.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.LLM.Model, DefaultModel)
	}
	if cfg.LLM.APIKeyEnv != DefaultAPIKeyEnv {
		t.Errorf("APIKeyEnv = %q, want %q", cfg.LLM.APIKeyEnv, DefaultAPIKeyEnv)
	}
	if cfg.LLM.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 (no client timeout)", cfg.LLM.Timeout)
	}
	if cfg.Portfolio.MaxLinks != 2 {
		t.Errorf("MaxLinks = %d, want 2", cfg.Portfolio.MaxLinks)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("COLDREACH_TEST_KEY", "from-env")
	cfg, err := Load(writeConfig(t, "llm:\n  api_key: ${COLDREACH_TEST_KEY}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.LLM.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "llm: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "llm:\n  timeout: soon\n"))
	if err == nil {
		t.Fatal("Load: expected error for unparseable llm.timeout")
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	_, err := Load(writeConfig(t, "llm:\n  base_url: ftp://nope\n"))
	var cfgErr *model.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *model.ConfigError, got %v", err)
	}
	if cfgErr.Field != "llm.base_url" {
		t.Errorf("Field = %q, want llm.base_url", cfgErr.Field)
	}
}

func TestLoad_NegativeMaxLinks(t *testing.T) {
	_, err := Load(writeConfig(t, "portfolio:\n  max_links: -1\n"))
	if err == nil {
		t.Fatal("Load: expected validation error for negative max_links")
	}
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
}

func TestLoadDotEnv_SetsUnsetVars(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("COLDREACH_DOTENV_TEST=hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COLDREACH_DOTENV_TEST", "")
	os.Unsetenv("COLDREACH_DOTENV_TEST")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("COLDREACH_DOTENV_TEST"); got != "hello" {
		t.Errorf("COLDREACH_DOTENV_TEST = %q, want hello", got)
	}
}
