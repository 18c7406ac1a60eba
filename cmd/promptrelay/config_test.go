package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"promptrelay/pkg/cli"
	"promptrelay/pkg/config"
)

// testCommand returns a command carrying the global config flag so
// loadConfig can tell whether it was set.
func testCommand(t *testing.T, path string, explicit bool) *cobra.Command {
	t.Helper()

	origCfg, origEnv := cfgFile, envFile
	t.Cleanup(func() { cfgFile, envFile = origCfg, origEnv })

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "config.yaml", "")
	if explicit {
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("set flag: %v", err)
		}
	} else {
		cfgFile = path
	}
	envFile = filepath.Join(t.TempDir(), "missing.env")
	return cmd
}

func TestLoadConfig_MissingDefaultFile(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := loadConfig(testCommand(t, missing, false))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Upstream.DefaultModel != config.DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", cfg.Upstream.DefaultModel, config.DefaultModel)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	_, err := loadConfig(testCommand(t, missing, true))

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("loadConfig() error = %v, want ConfigError", err)
	}
}

func TestLoadConfig_ValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("upstream:\n  base_url: \"not a url\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := loadConfig(testCommand(t, path, true))

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("loadConfig() error = %v, want ConfigError", err)
	}
	if cfgErr.Field != "upstream.base_url" {
		t.Errorf("Field = %q, want upstream.base_url", cfgErr.Field)
	}
}

func TestPrintConfig_MasksAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.Upstream.APIKey = "sk-or-v1-0123456789abcdef"

	buf := &bytes.Buffer{}
	if err := printConfig(buf, cfg, cli.FormatYAML); err != nil {
		t.Fatalf("printConfig() error = %v", err)
	}

	if strings.Contains(buf.String(), cfg.Upstream.APIKey) {
		t.Fatalf("API key leaked into output:\n%s", buf.String())
	}

	var decoded config.Config
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Upstream.APIKey != "****cdef" {
		t.Errorf("api_key = %q, want %q", decoded.Upstream.APIKey, "****cdef")
	}
	if decoded.Proxy.ShutdownTimeout != cfg.Proxy.ShutdownTimeout {
		t.Errorf("shutdown_timeout = %v, want %v", decoded.Proxy.ShutdownTimeout, cfg.Proxy.ShutdownTimeout)
	}
}

func TestNewProvider_AttributionHeaders(t *testing.T) {
	cfg := config.Default().Upstream
	cfg.AppURL = "https://example.com"
	cfg.AppName = "promptrelay"

	provider, err := newProvider(cfg)
	if err != nil {
		t.Fatalf("newProvider() error = %v", err)
	}
	defer provider.Close()

	headers := provider.GetConfig().Headers
	if headers["HTTP-Referer"] != "https://example.com" || headers["X-Title"] != "promptrelay" {
		t.Errorf("headers = %v", headers)
	}
	if provider.Endpoint() != "https://openrouter.ai/api/v1/chat/completions" {
		t.Errorf("Endpoint() = %q", provider.Endpoint())
	}
}

func TestUpstreamDisplayName(t *testing.T) {
	if got := upstreamDisplayName("openrouter"); got != "OpenRouter" {
		t.Errorf("upstreamDisplayName(openrouter) = %q", got)
	}
	if got := upstreamDisplayName("local"); got != "local" {
		t.Errorf("upstreamDisplayName(local) = %q", got)
	}
}
