package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"damasgochi/internal/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StateDir != filepath.Join(xdg, "damasgochi") {
		t.Errorf("Expected state dir under XDG_CONFIG_HOME, got %s", cfg.StateDir)
	}
	if cfg.Backend != BackendFile || cfg.Codec != CodecXOR || !cfg.Economy {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.TickInterval.Duration != 3*time.Second || cfg.DeliverFlash.Duration != 300*time.Millisecond {
		t.Errorf("Unexpected default durations: %v %v", cfg.TickInterval, cfg.DeliverFlash)
	}
	if cfg.PaymentCode != "1004" || cfg.MissionBonus != 20 {
		t.Errorf("Unexpected default gates: %q %d", cfg.PaymentCode, cfg.MissionBonus)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend = "sqlite"
economy = false
seed = 42
tick_interval = "1s"
deliver_flash = "250ms"

[prices]
diaper = 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.Economy || cfg.Seed != 42 {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if cfg.TickInterval.Duration != time.Second || cfg.DeliverFlash.Duration != 250*time.Millisecond {
		t.Errorf("Expected 1s and 250ms, got %v and %v", cfg.TickInterval, cfg.DeliverFlash)
	}
	if cfg.Prices.Diaper != 50 || cfg.Prices.Food != 100 {
		t.Errorf("Expected diaper 50 and default food 100, got %+v", cfg.Prices)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
backend = "sqlite"
tick_interval = "1s"
`)
	t.Setenv("DAMASGOCHI_BACKEND", "memory")
	t.Setenv("DAMASGOCHI_TICK_INTERVAL", "500ms")
	t.Setenv("DAMASGOCHI_ECONOMY", "false")
	t.Setenv("DAMASGOCHI_PRICE_FOOD", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Expected env backend memory, got %s", cfg.Backend)
	}
	if cfg.TickInterval.Duration != 500*time.Millisecond {
		t.Errorf("Expected 500ms, got %v", cfg.TickInterval)
	}
	if cfg.Economy {
		t.Error("Expected economy disabled from env")
	}
	if cfg.Prices.Food != 7 {
		t.Errorf("Expected food price 7, got %d", cfg.Prices.Food)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown backend",
			content: `backend = "floppy"`,
			wantErr: ErrUnknownBackend,
		},
		{
			name:    "unknown codec",
			content: `codec = "rot13"`,
			wantErr: ErrUnknownCodec,
		},
		{
			name:    "broken toml",
			content: `backend = `,
			wantMsg: "parse config",
		},
		{
			name:    "bad duration",
			content: `tick_interval = "soon"`,
			wantMsg: "parse config",
		},
		{
			name:    "bad env",
			env:     map[string]string{"DAMASGOCHI_SEED": "lucky"},
			wantMsg: "parse env:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected %q in error, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		Backend:      "  SQLite ",
		Codec:        "PLAIN",
		TickInterval: Duration{-time.Second},
		MissionBonus: -5,
		Prices:       Prices{Diaper: -1, Food: 3},
	}

	got := Normalize(cfg)
	def := Default()
	if got.Backend != BackendSQLite || got.Codec != CodecPlain {
		t.Errorf("Expected lower-cased names, got %q %q", got.Backend, got.Codec)
	}
	if got.StateDir != def.StateDir || got.SlotKey != def.SlotKey || got.Secret != def.Secret {
		t.Errorf("Expected blank paths and keys to default, got %+v", got)
	}
	if got.TickInterval != def.TickInterval || got.ActionFlash != def.ActionFlash {
		t.Errorf("Expected non-positive durations to default, got %v %v", got.TickInterval, got.ActionFlash)
	}
	if got.MissionBonus != 0 || got.Prices.Diaper != 0 || got.Prices.Food != 3 {
		t.Errorf("Expected negatives floored at 0, got bonus %d prices %+v", got.MissionBonus, got.Prices)
	}
	if got.PaymentCode != def.PaymentCode || got.MissionPhrase != def.MissionPhrase {
		t.Errorf("Expected blank codes to default, got %q %q", got.PaymentCode, got.MissionPhrase)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Backend = BackendSQLite
	cfg.AutoDeliverInterval = Duration{5 * time.Second}
	cfg.Prices.Play = 9

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `auto_deliver_interval = '5s'`) && !strings.Contains(string(data), `auto_deliver_interval = "5s"`) {
		t.Errorf("Expected durations written as text, got:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Backend != BackendSQLite || got.AutoDeliverInterval.Duration != 5*time.Second || got.Prices.Play != 9 {
		t.Errorf("Expected saved values back, got %+v", got)
	}
}

func TestRandSeed(t *testing.T) {
	seed, err := Config{Seed: 42}.RandSeed()
	if err != nil || seed != 42 {
		t.Errorf("Expected fixed seed 42, got %d (%v)", seed, err)
	}
	if _, err := (Config{}).RandSeed(); err != nil {
		t.Errorf("Expected a random seed, got %v", err)
	}
}

func TestValidBackendsOpen(t *testing.T) {
	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		for _, codec := range []string{CodecXOR, CodecPlain} {
			cfg := Default()
			cfg.Backend = backend
			cfg.Codec = codec
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate(%s, %s) error = %v", backend, codec, err)
			}
			if _, err := store.NewCodec(cfg.Codec, cfg.Secret); err != nil {
				t.Errorf("NewCodec(%s) error = %v", codec, err)
			}
			slot, err := store.OpenSlot(cfg.Backend, t.TempDir())
			if err != nil {
				t.Fatalf("OpenSlot(%s) error = %v", backend, err)
			}
			slot.Close()
		}
	}
}
