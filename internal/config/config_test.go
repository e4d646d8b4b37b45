package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/mpl-analyzer/internal/domain/awards"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/sheet"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SCORING_POLICY", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("BATCH_WORKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoringPolicy != awards.PolicyWeighted {
		t.Fatalf("expected weighted policy by default, got %q", cfg.ScoringPolicy)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected default log level: %s", cfg.LogLevel)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Fatalf("unexpected default upload limit: %d", cfg.UploadMaxBytes)
	}
	if cfg.BatchWorkers != 4 {
		t.Fatalf("unexpected default batch workers: %d", cfg.BatchWorkers)
	}
	if cfg.ServiceName != "mpl-analyzer" {
		t.Fatalf("unexpected default service name: %q", cfg.ServiceName)
	}
}

func TestLoad_LogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	tests := []struct {
		raw     string
		want    logging.Level
		wantErr bool
	}{
		{raw: "debug", want: logging.LevelDebug},
		{raw: " INFO ", want: logging.LevelInfo},
		{raw: "warning", want: logging.LevelWarn},
		{raw: "error", want: logging.LevelError},
		{raw: "verbose", wantErr: true},
		{raw: "inf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("APP_LOG_LEVEL", tt.raw)
			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for APP_LOG_LEVEL=%q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.LogLevel != tt.want {
				t.Fatalf("APP_LOG_LEVEL=%q: got %s want %s", tt.raw, cfg.LogLevel, tt.want)
			}
		})
	}
}

func TestLoad_ScoringPolicy(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("simple", func(t *testing.T) {
		t.Setenv("SCORING_POLICY", " Simple ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ScoringPolicy != awards.PolicySimple {
			t.Fatalf("unexpected policy: %q", cfg.ScoringPolicy)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("SCORING_POLICY", "vibes")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown SCORING_POLICY")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "mpl-analyzer-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "mpl-analyzer-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 10*time.Minute {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_RateLimitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("non positive rps", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_RPS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for RATE_LIMIT_RPS=0")
		}
	})

	t.Run("invalid burst", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_RPS", "2.5")
		t.Setenv("RATE_LIMIT_BURST", "many")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid RATE_LIMIT_BURST")
		}
	})
}

func TestLoadColumns(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		columns, err := LoadColumns("")
		if err != nil {
			t.Fatalf("load columns: %v", err)
		}
		if columns != sheet.DefaultColumns() {
			t.Fatalf("expected default columns, got %+v", columns)
		}
	})

	t.Run("override keeps unset defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "columns.yaml")
		body := "team_name: Squad\nkda_ratio: KDA\n"
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write columns file: %v", err)
		}

		columns, err := LoadColumns(path)
		if err != nil {
			t.Fatalf("load columns: %v", err)
		}
		if columns.TeamName != "Squad" || columns.KDARatio != "KDA" {
			t.Fatalf("override not applied: %+v", columns)
		}
		if columns.PlayerName != sheet.DefaultColumns().PlayerName {
			t.Fatalf("expected default player column, got %q", columns.PlayerName)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "columns.yaml")
		if err := os.WriteFile(path, []byte("mystery: X\n"), 0o600); err != nil {
			t.Fatalf("write columns file: %v", err)
		}
		if _, err := LoadColumns(path); err == nil {
			t.Fatalf("expected error for unknown key")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadColumns(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}
