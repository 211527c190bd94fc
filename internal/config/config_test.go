package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	for _, k := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "INTEGRATION_LOG_RETENTION"} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DBPath != "pm.db" {
		t.Fatalf("DBPath default = %q", cfg.DBPath)
	}
	if cfg.Integrations.LogRetention != 720*time.Hour || !cfg.Integrations.SeedDefaultSettings {
		t.Fatalf("integrations defaults unexpected: %+v", cfg.Integrations)
	}
	if cfg.RetentionDays() != 30 {
		t.Fatalf("RetentionDays = %d", cfg.RetentionDays())
	}
	if !cfg.GzipEnabled || cfg.APIBasePath != "/api/v1" || cfg.OTEL.ServiceName != "go-pm-backend" {
		t.Fatalf("defaults unexpected: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird")
	t.Setenv("GZIP_ENABLED", "off")

	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v2/")

	t.Setenv("DB_PATH", "tenants.sqlite")
	t.Setenv("INTEGRATION_LOG_RETENTION", "168h")
	t.Setenv("SEED_DEFAULT_SETTINGS", "no")

	t.Setenv("RATE_RPS", "x")
	t.Setenv("RATE_BURST", "nope")

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")
	t.Setenv("IDEMPOTENCY_TTL", "48h")

	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" ||
		cfg.GzipEnabled {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v2" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	if cfg.DBPath != "tenants.sqlite" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Integrations.LogRetention != 7*24*time.Hour || cfg.Integrations.SeedDefaultSettings || cfg.RetentionDays() != 7 {
		t.Fatalf("integrations unexpected: %+v", cfg.Integrations)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate limiting should fall back to defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name, key, val, want string
	}{
		{"log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"empty port", "PORT", "   ", "PORT must not be empty"},
		{"timeouts", "READ_TIMEOUT", "0s", "timeouts must be positive"},
		{"header bytes", "MAX_HEADER_BYTES", "0", "MAX_HEADER_BYTES"},
		{"db path", "DB_PATH", "   ", "DB_PATH must not be empty"},
		{"retention", "INTEGRATION_LOG_RETENTION", "1h", "INTEGRATION_LOG_RETENTION"},
		{"rate rps", "RATE_RPS", "-1", "RATE_RPS"},
		{"rate burst", "RATE_BURST", "0", "RATE_BURST"},
		{"hsts", "HSTS_MAX_AGE", "-1s", "HSTS_MAX_AGE"},
		{"idempotency", "IDEMPOTENCY_TTL", "0s", "IDEMPOTENCY_TTL"},
		{"otel ratio", "OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestHelpers_getbool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "Y", "on"} {
		t.Setenv("B_TRUE", v)
		if !getbool("B_TRUE", false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	for _, v := range []string{"0", "false", " no ", "N", "off"} {
		t.Setenv("B_FALSE", v)
		if getbool("B_FALSE", true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	t.Setenv("B_JUNK", "maybe")
	if !getbool("B_JUNK", true) {
		t.Fatalf("unrecognised value should fall back to default")
	}
}

func TestHelpers_ParseFallbacks(t *testing.T) {
	t.Setenv("F_BAD", "nope")
	t.Setenv("I_BAD", "x")
	t.Setenv("D_BAD", "zzz")
	if getfloat("F_BAD", 1.25) != 1.25 || getint("I_BAD", 7) != 7 || getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("bad values should fall back to defaults")
	}
	t.Setenv("D_OK", "150ms")
	if getdur("D_OK", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_DAYS", "30d")
	if getdur("D_DAYS", time.Second) != 30*24*time.Hour {
		t.Fatalf("getdur day suffix failed")
	}
	t.Setenv("D_DAYS_BAD", "xd")
	if getdur("D_DAYS_BAD", time.Second) != time.Second {
		t.Fatalf("bad day count should fall back")
	}
}

func TestHelpers_splitCSV_normalizeBasePath(t *testing.T) {
	if splitCSV("") != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitCSV = %#v", got)
	}
	for in, want := range map[string]string{"": "/", "v1": "/v1", "/v1/": "/v1", " / ": "/", "//": "/"} {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}
