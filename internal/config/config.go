package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/logic"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	API     APISettings    `toml:"api"`
	Picker  PickerSettings `toml:"picker"`
	UI      UISettings     `toml:"ui"`
	Log     LogSettings    `toml:"log"`
}

// APISettings points the picker at a file server
type APISettings struct {
	BaseURL       string   `toml:"base_url"`
	Timeout       Duration `toml:"timeout"`
	Token         string   `toml:"token,omitempty"`
	RetryAttempts int      `toml:"retry_attempts"`
}

// PickerSettings holds the defaults for a picking session
type PickerSettings struct {
	InitialPath       string   `toml:"initial_path"`
	MaxFiles          int      `toml:"max_files"`
	AllowedTypes      []string `toml:"allowed_types"`
	UploadConcurrency int      `toml:"upload_concurrency"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Theme        string `toml:"theme"`
	ViewMode     string `toml:"view_mode"`
	SortKey      string `toml:"sort"`
	Descending   bool   `toml:"descending"`
	FoldersFirst bool   `toml:"folders_first"`
	Locale       string `toml:"locale"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

// Duration is a time.Duration stored as a string like "30s"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// SortConfig converts the UI settings to a sort configuration
func (c *Config) SortConfig() (logic.SortConfig, error) {
	key, err := logic.ParseSortKey(c.UI.SortKey)
	if err != nil {
		return logic.DefaultSortConfig(), err
	}
	dir := logic.Ascending
	if c.UI.Descending {
		dir = logic.Descending
	}
	return logic.SortConfig{Key: key, Direction: dir, FoldersFirst: c.UI.FoldersFirst}, nil
}

// AllowedFileTypes returns the parsed type allowlist
func (c *Config) AllowedFileTypes() []domain.FileType {
	var out []domain.FileType
	for _, s := range c.Picker.AllowedTypes {
		if t := domain.ParseFileType(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ApplyPreferences copies a persisted preference change into the config
func (c *Config) ApplyPreferences(e eventbus.ConfigChangedEvent) {
	c.UI.SortKey = e.SortKey
	c.UI.Descending = e.Descending
	c.UI.FoldersFirst = e.FoldersFirst
	c.UI.ViewMode = e.ViewMode
}

// Validate reports settings that cannot work
func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is empty"))
	}
	if c.Picker.MaxFiles < 1 {
		errs = append(errs, fmt.Errorf("picker.max_files must be at least 1, got %d", c.Picker.MaxFiles))
	}
	if _, err := logic.ParseSortKey(c.UI.SortKey); err != nil {
		errs = append(errs, fmt.Errorf("ui.sort: %w", err))
	}
	switch c.UI.ViewMode {
	case "", "list", "grid":
	default:
		errs = append(errs, fmt.Errorf("ui.view_mode must be list or grid, got %q", c.UI.ViewMode))
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "filegrip", "config.toml")
}

// NewConfigService creates a config service for path; empty means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config %s at line %d column %d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:       "http://localhost:3000",
			Timeout:       Duration{30 * time.Second},
			RetryAttempts: 3,
		},
		Picker: PickerSettings{
			InitialPath:       "/",
			MaxFiles:          1,
			UploadConcurrency: 3,
		},
		UI: UISettings{
			Theme:        "silex",
			ViewMode:     "list",
			SortKey:      "name",
			FoldersFirst: true,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "json",
			Path:   "filegrip.log",
		},
	}
}
