package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"damasgochi/internal/store"
)

// Storage backends and codecs understood by the store
const (
	BackendFile   = store.BackendFile
	BackendSQLite = store.BackendSQLite
	BackendMemory = store.BackendMemory

	CodecXOR   = store.CodecXOR
	CodecPlain = store.CodecPlain
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrUnknownCodec   = errors.New("unknown codec")
)

// Prices lists the shop price of each item in coins
type Prices struct {
	Diaper int `toml:"diaper" env:"DIAPER"`
	Food   int `toml:"food" env:"FOOD"`
	Play   int `toml:"play" env:"PLAY"`
}

// Config holds user-configurable settings. Values are layered: defaults, then the
// config file, then DAMASGOCHI_* environment variables, then command-line flags.
type Config struct {
	StateDir string `toml:"state_dir" env:"STATE_DIR"`
	Backend  string `toml:"backend" env:"BACKEND"`
	SlotKey  string `toml:"slot_key" env:"SLOT_KEY"`
	Codec    string `toml:"codec" env:"CODEC"`
	Secret   string `toml:"secret" env:"SECRET"`
	LogFile  string `toml:"log_file" env:"LOG_FILE"`

	Economy bool  `toml:"economy" env:"ECONOMY"`
	Seed    int64 `toml:"seed" env:"SEED"`

	TickInterval        Duration `toml:"tick_interval" env:"TICK_INTERVAL"`
	AutoDeliverInterval Duration `toml:"auto_deliver_interval" env:"AUTO_DELIVER_INTERVAL"`
	LevelUpBanner       Duration `toml:"level_up_banner" env:"LEVEL_UP_BANNER"`
	ActionFlash         Duration `toml:"action_flash" env:"ACTION_FLASH"`
	DeliverFlash        Duration `toml:"deliver_flash" env:"DELIVER_FLASH"`

	PaymentCode   string `toml:"payment_code" env:"PAYMENT_CODE"`
	MissionPhrase string `toml:"mission_phrase" env:"MISSION_PHRASE"`
	MissionBonus  int    `toml:"mission_bonus" env:"MISSION_BONUS"`

	Prices Prices `toml:"prices" envPrefix:"PRICE_"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		StateDir:            defaultDir(),
		Backend:             BackendFile,
		SlotKey:             "damasgochi_pet",
		Codec:               CodecXOR,
		Secret:              "damas_secret_key",
		Economy:             true,
		TickInterval:        Duration{3 * time.Second},
		AutoDeliverInterval: Duration{3 * time.Second},
		LevelUpBanner:       Duration{3 * time.Second},
		ActionFlash:         Duration{1500 * time.Millisecond},
		DeliverFlash:        Duration{300 * time.Millisecond},
		PaymentCode:         "1004",
		MissionPhrase:       "해시는 최고다",
		MissionBonus:        20,
		Prices: Prices{
			Diaper: 500,
			Food:   100,
			Play:   100,
		},
	}
}

// defaultDir returns $XDG_CONFIG_HOME/damasgochi, falling back to ~/.config/damasgochi
func defaultDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "damasgochi")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".damasgochi")
	}
	return filepath.Join(home, ".config", "damasgochi")
}

// Path returns the default location of the config file
func Path() string {
	return filepath.Join(defaultDir(), "config.toml")
}

// Load builds the configuration from defaults, the config file at path (Path() when
// empty) and the environment. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Default(), fmt.Errorf("read config: %w", err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return Default(), err
	}

	cfg = Normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML
func Save(cfg Config, path string) error {
	if path == "" {
		path = Path()
	}
	cfg = Normalize(cfg)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Normalize fills in blanks and replaces out-of-range values with defaults
func Normalize(cfg Config) Config {
	def := Default()

	cfg.StateDir = strings.TrimSpace(cfg.StateDir)
	if cfg.StateDir == "" {
		cfg.StateDir = def.StateDir
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = def.Backend
	}
	cfg.Codec = strings.ToLower(strings.TrimSpace(cfg.Codec))
	if cfg.Codec == "" {
		cfg.Codec = def.Codec
	}
	cfg.SlotKey = strings.TrimSpace(cfg.SlotKey)
	if cfg.SlotKey == "" {
		cfg.SlotKey = def.SlotKey
	}
	if cfg.Secret == "" {
		cfg.Secret = def.Secret
	}
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)

	for _, d := range []struct {
		v   *Duration
		def Duration
	}{
		{&cfg.TickInterval, def.TickInterval},
		{&cfg.AutoDeliverInterval, def.AutoDeliverInterval},
		{&cfg.LevelUpBanner, def.LevelUpBanner},
		{&cfg.ActionFlash, def.ActionFlash},
		{&cfg.DeliverFlash, def.DeliverFlash},
	} {
		if d.v.Duration <= 0 {
			*d.v = d.def
		}
	}

	cfg.PaymentCode = strings.TrimSpace(cfg.PaymentCode)
	if cfg.PaymentCode == "" {
		cfg.PaymentCode = def.PaymentCode
	}
	cfg.MissionPhrase = strings.TrimSpace(cfg.MissionPhrase)
	if cfg.MissionPhrase == "" {
		cfg.MissionPhrase = def.MissionPhrase
	}
	cfg.MissionBonus = max(cfg.MissionBonus, 0)

	cfg.Prices.Diaper = max(cfg.Prices.Diaper, 0)
	cfg.Prices.Food = max(cfg.Prices.Food, 0)
	cfg.Prices.Play = max(cfg.Prices.Play, 0)
	return cfg
}

// Validate rejects settings Normalize cannot repair
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	switch c.Codec {
	case CodecXOR, CodecPlain:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCodec, c.Codec)
	}
	return nil
}
