package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "MARKET_TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "MARKET_TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "MARKET_TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "MARKET_TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "MARKET_TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "MARKET_TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "MARKET_TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "MARKET_TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "MARKET_TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"127.0.0.1/32", []string{"127.0.0.1/32"}},
		{` "10.0.0.0/8" , ::1/128 ,, `, []string{"10.0.0.0/8", "::1/128"}},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"MARKET_LISTEN_PORT", "MARKET_STORE_BACKEND", "MARKET_STORE_PATH", "MARKET_ALLOWED_CIDRS", "MARKET_LOG_LEVEL", "MARKET_RELOAD_INTERVAL", "MARKET_MAX_IMPORT_BYTES"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.ListenPort != "127.0.0.1:8080" {
		t.Errorf("ListenPort = %q", cfg.ListenPort)
	}
	if cfg.StoreBackend != BackendFile {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, BackendFile)
	}
	if cfg.StorePath == "" {
		t.Error("StorePath should have a default")
	}
	if len(cfg.AllowedCIDRS) != 2 {
		t.Errorf("AllowedCIDRS = %v, want loopback defaults", cfg.AllowedCIDRS)
	}
	if cfg.ReloadInterval != 30*time.Second {
		t.Errorf("ReloadInterval = %v, want 30s", cfg.ReloadInterval)
	}
	if cfg.MaxImportBytes != 5<<20 {
		t.Errorf("MaxImportBytes = %d", cfg.MaxImportBytes)
	}
	if cfg.WriteBurst != 30 || cfg.WritePerMin != 60 {
		t.Errorf("write limit = %d/%d per min, want 30/60", cfg.WriteBurst, cfg.WritePerMin)
	}
}

func TestLoadRedisBackend(t *testing.T) {
	t.Setenv("MARKET_STORE_BACKEND", "Redis")
	t.Setenv("MARKET_REDIS_ADDR", "localhost:6379")
	t.Setenv("MARKET_STORE_KEY", "board")

	cfg := Load()
	if cfg.StoreBackend != BackendRedis || cfg.RedisAddr != "localhost:6379" || cfg.StoreKey != "board" {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadRedisBackendRequiresAddr(t *testing.T) {
	t.Setenv("MARKET_STORE_BACKEND", "redis")
	t.Setenv("MARKET_REDIS_ADDR", "")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked without MARKET_REDIS_ADDR")
		}
	}()
	Load()
}

func TestLoadUnknownBackend(t *testing.T) {
	t.Setenv("MARKET_STORE_BACKEND", "sqlite")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked for an unknown backend")
		}
	}()
	Load()
}
