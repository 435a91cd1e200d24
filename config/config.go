package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"rental_browser/api"
)

const defaultProfileDir = "config/profiles"

type Config struct {
	API      APIConfig
	UI       UIConfig
	LogPath  string
	LogLevel string
	Profile  string
	Profiles map[string]*Profile
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type UIConfig struct {
	PageSize     int
	SuggestDelay time.Duration
}

// Profile names an API deployment. Zero fields leave the env value alone.
type Profile struct {
	Name     string `yaml:"name"`
	BaseURL  string `yaml:"base_url"`
	PageSize int    `yaml:"page_size"`
}

// Load reads the configuration. A non-empty profile takes precedence over
// RENTALS_PROFILE.
func Load(profile string) (*Config, error) {
	return LoadFrom(defaultProfileDir, profile)
}

// LoadFrom reads .env, the environment and the profiles under dir.
func LoadFrom(profileDir, profile string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("RENTALS_API_BASE_URL", api.DefaultBaseURL),
			Timeout: getEnvDuration("RENTALS_HTTP_TIMEOUT", 15*time.Second),
		},
		UI: UIConfig{
			PageSize:     getEnvInt("RENTALS_PAGE_SIZE", 20),
			SuggestDelay: getEnvDuration("RENTALS_SUGGEST_DELAY", 250*time.Millisecond),
		},
		LogPath:  getEnv("LOG_PATH", "rental_browser.log"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Profiles: make(map[string]*Profile),
	}

	if cfg.UI.PageSize <= 0 {
		return nil, fmt.Errorf("RENTALS_PAGE_SIZE must be positive, got %d", cfg.UI.PageSize)
	}

	if err := cfg.loadProfiles(profileDir); err != nil {
		return nil, err
	}

	name := profile
	if name == "" {
		name = os.Getenv("RENTALS_PROFILE")
	}
	if name != "" {
		if err := cfg.UseProfile(name); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) loadProfiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var p Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if p.Name == "" {
			p.Name = entry.Name()[:len(entry.Name())-len(".yaml")]
		}

		c.Profiles[p.Name] = &p
	}

	return nil
}

// UseProfile applies a named profile on top of the environment.
func (c *Config) UseProfile(name string) error {
	p, ok := c.Profiles[name]
	if !ok {
		return fmt.Errorf("unknown profile %q (have %v)", name, c.ProfileNames())
	}
	if p.BaseURL != "" {
		c.API.BaseURL = p.BaseURL
	}
	if p.PageSize > 0 {
		c.UI.PageSize = p.PageSize
	}
	c.Profile = name
	return nil
}

func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
