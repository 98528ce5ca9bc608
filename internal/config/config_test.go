package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listlens.yaml")
	in := Default()
	in.List.ID = "42"
	in.Pipeline.Mode = "simplified"
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.List.ID != "42" || out.Pipeline.Mode != "simplified" {
		t.Fatalf("loaded = %+v", out)
	}
	if out.List.BaseURL != "https://x.com" || out.Server.Addr != ":8080" {
		t.Fatalf("defaults lost: %+v", out)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_BEARER_TOKEN", "env-token")
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg := Default()
	cfg.LLM.Provider = "openai"
	cfg.ResolveEnv()
	if cfg.Credentials.BearerToken != "env-token" {
		t.Fatalf("bearer = %q", cfg.Credentials.BearerToken)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("apiKey = %q", cfg.LLM.APIKey)
	}

	explicit := Default()
	explicit.Credentials.BearerToken = "file-token"
	explicit.ResolveEnv()
	if explicit.Credentials.BearerToken != "file-token" {
		t.Fatalf("file value overridden: %q", explicit.Credentials.BearerToken)
	}
}

func TestSaveEmptyPath(t *testing.T) {
	if err := Save("", Default()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
