// internal/config/config.go
//
// This package handles client configuration. Settings live in a
// per-user directory (~/.propdesk) so the backend URL, token and
// active department survive between runs.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// PropdeskDir is the directory created under the user's home.
	PropdeskDir = ".propdesk"

	configFileName = "config.yaml"

	defaultDepartment  = "sales"
	defaultCountryCode = "91"
	defaultPageSize    = 50
)

const defaultConfigYAML = `# propdesk client configuration
version: 1

# Backend connection. The token is the bearer token issued by the CRM
# backend; requests go out with an Authorization: Bearer header.
api:
  base_url: http://localhost:4000/api
  token: ""

# Department scoping for the list screens. The active department is
# sent as a query parameter on every list fetch and also picks the
# accent theme.
departments:
  active: sales
  available:
    - sales
    - rentals
    - resale

# Country calling code prepended to bare ten-digit numbers when
# building WhatsApp deep links.
country_code: "91"

# Records fetched per page.
page_size: 50
`

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// DepartmentConfig captures the department switcher state.
type DepartmentConfig struct {
	Active    string   `yaml:"active"`
	Available []string `yaml:"available,omitempty"`
}

// FileConfig models the on-disk config.yaml document.
type FileConfig struct {
	Version     int              `yaml:"version"`
	API         APIConfig        `yaml:"api"`
	Departments DepartmentConfig `yaml:"departments"`
	CountryCode string           `yaml:"country_code"`
	PageSize    int              `yaml:"page_size"`
}

// Config holds the runtime configuration for propdesk.
type Config struct {
	// Dir is the directory holding config.yaml and logs/.
	Dir string

	File FileConfig
}

// DefaultDir returns the per-user config directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, PropdeskDir), nil
}

// InitDir creates the config directory structure and drops a
// commented default config file when none exists yet.
//
// Structure created:
// .propdesk/
// ├── config.yaml
// └── logs/         <- session logbook
func InitDir(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o600)
}

// Load reads the config file under dir. Missing fields get defaults;
// a missing file yields the pure defaults so a first run works before
// the user has edited anything.
func Load(dir string) (*Config, error) {
	cfg := &Config{
		Dir:  dir,
		File: defaultFileConfig(),
	}
	data, err := os.ReadFile(cfg.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", cfg.Path(), err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", cfg.Path(), err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.File = parsed
	return cfg, nil
}

// Path returns the on-disk location of the config file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, configFileName)
}

// LogPath returns the session logbook location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, "logs", "propdesk.log")
}

// BaseURL returns the backend base URL.
func (c *Config) BaseURL() string { return c.File.API.BaseURL }

// Token returns the backend bearer token.
func (c *Config) Token() string { return c.File.API.Token }

// Department returns the active department.
func (c *Config) Department() string { return c.File.Departments.Active }

// Departments returns the switcher choices.
func (c *Config) Departments() []string { return c.File.Departments.Available }

// CountryCode returns the calling code used for phone normalization.
func (c *Config) CountryCode() string { return c.File.CountryCode }

// PageSize returns the list fetch page size.
func (c *Config) PageSize() int { return c.File.PageSize }

// SetDepartment switches the active department and persists the value
// back to config.yaml. The department is also appended to the
// available list so the switcher can display it on future launches.
func (c *Config) SetDepartment(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("config: department name is required")
	}
	c.File.Departments.Active = name
	if !contains(c.File.Departments.Available, name) {
		c.File.Departments.Available = append(c.File.Departments.Available, name)
	}
	return c.save()
}

func (c *Config) save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.File.applyDefaults()
	c.File.normalize()
	if err := c.File.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("config: ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(c.File)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.Path(), data, 0o600); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		API: APIConfig{
			BaseURL: "http://localhost:4000/api",
		},
		Departments: DepartmentConfig{
			Active:    defaultDepartment,
			Available: []string{"sales", "rentals", "resale"},
		},
		CountryCode: defaultCountryCode,
		PageSize:    defaultPageSize,
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	if strings.TrimSpace(fc.CountryCode) == "" {
		fc.CountryCode = defaultCountryCode
	}
	if fc.PageSize == 0 {
		fc.PageSize = defaultPageSize
	}
	if strings.TrimSpace(fc.Departments.Active) == "" {
		fc.Departments.Active = defaultDepartment
	}
}

func (fc *FileConfig) normalize() {
	fc.API.BaseURL = strings.TrimRight(strings.TrimSpace(fc.API.BaseURL), "/")
	fc.API.Token = strings.TrimSpace(fc.API.Token)
	fc.CountryCode = strings.TrimSpace(fc.CountryCode)
	fc.Departments.Active = strings.ToLower(strings.TrimSpace(fc.Departments.Active))

	seen := map[string]struct{}{}
	cleaned := make([]string, 0, len(fc.Departments.Available))
	for _, dept := range fc.Departments.Available {
		dept = strings.ToLower(strings.TrimSpace(dept))
		if dept == "" {
			continue
		}
		if _, ok := seen[dept]; ok {
			continue
		}
		seen[dept] = struct{}{}
		cleaned = append(cleaned, dept)
	}
	fc.Departments.Available = cleaned
	if len(fc.Departments.Available) > 0 && !contains(fc.Departments.Available, fc.Departments.Active) {
		fc.Departments.Available = append(fc.Departments.Available, fc.Departments.Active)
	}
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if fc.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	parsed, err := url.Parse(fc.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute URL", fc.API.BaseURL)
	}
	if fc.PageSize < 1 {
		return fmt.Errorf("page_size must be >= 1")
	}
	for _, r := range fc.CountryCode {
		if r < '0' || r > '9' {
			return fmt.Errorf("country_code %q must be digits only", fc.CountryCode)
		}
	}
	if fc.Departments.Active == "" {
		return fmt.Errorf("departments.active is required")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}
