package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl_hours = 24

[catalog]
mongo_uri = "mongodb://localhost:27017"

[serve]
addr = ":9090"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTLHours != 24 {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Catalog.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("catalog config = %+v", cfg.Catalog)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("serve addr = %q", cfg.Serve.Addr)
	}
	// Unset fields keep their defaults.
	if cfg.Serve.MaxUploadMB != 64 {
		t.Errorf("max upload = %d, want default 64", cfg.Serve.MaxUploadMB)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "UnknownBackend",
			content: "[cache]\nbackend = \"memcached\"\n",
			wantErr: "unknown cache backend",
		},
		{
			name:    "RedisWithoutURL",
			content: "[cache]\nbackend = \"redis\"\n",
			wantErr: "requires redis_url",
		},
		{
			name:    "NegativeTTL",
			content: "[cache]\nbackend = \"file\"\nttl_hours = -1\n",
			wantErr: "ttl_hours",
		},
		{
			name:    "NotTOML",
			content: "{ json }",
			wantErr: "load config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("default backend = %q", cfg.Cache.Backend)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Serve.Addr)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgconf")
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdgconf", appName, "config.toml") {
		t.Errorf("ConfigPath = %q", path)
	}
}
