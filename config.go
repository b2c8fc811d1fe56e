package auth

import (
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// StorageScope selects where sessions are persisted, and therefore how long
// they live. "file" is the default: the profile-wide scope, surviving
// restarts. "memory" limits the session to the process lifetime and "sqlite"
// keeps one durable session per named profile.
type StorageScope string

const (
	ScopeMemory StorageScope = "memory"
	ScopeFile   StorageScope = "file"
	ScopeSQLite StorageScope = "sqlite"
)

// Endpoints holds the backend auth paths. Paths vary across backend
// revisions, so they are configuration rather than constants.
type Endpoints struct {
	Login    string `yaml:"login"`
	Register string `yaml:"register"`
	Refresh  string `yaml:"refresh"`
}

// Config holds client options.
type Config struct {
	BaseURL        string       `yaml:"base_url"`
	Endpoints      Endpoints    `yaml:"endpoints"`
	Scope          StorageScope `yaml:"scope"`
	SessionPath    string       `yaml:"session_path"`
	Profile        string       `yaml:"profile"`
	TimeoutSeconds int          `yaml:"timeout_seconds"`
	LoginRoute     string       `yaml:"login_route"`
	HomeRoute      string       `yaml:"home_route"`
	Routes         RouteTable   `yaml:"routes"`
}

// RequestTimeout returns the configured per-request timeout. Timeouts are a
// hardening measure; zero disables them.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns the configuration matching the reference backend,
// including the default role requirements per navigable route.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:8000",
		Endpoints: Endpoints{
			Login:    "/auth/login",
			Register: "/auth/register",
			Refresh:  "/auth/refresh",
		},
		Scope:          ScopeFile,
		SessionPath:    DefaultSessionPath(),
		Profile:        "default",
		TimeoutSeconds: 15,
		LoginRoute:     "login",
		HomeRoute:      "home",
		Routes: RouteTable{
			"home":        nil,
			"mis-notas":   {RoleEstudiante},
			"notas":       {RoleProfesor, RoleAdmin},
			"estudiantes": {RoleProfesor, RoleAdmin},
			"usuarios":    {RoleAdmin},
			"auditoria":   {RoleAdmin},
		},
	}
}

// Validate will run validation rules
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Scope, validation.In(ScopeMemory, ScopeFile, ScopeSQLite)),
		validation.Field(&c.LoginRoute, validation.Required),
		validation.Field(&c.HomeRoute, validation.Required),
	)
}

// LoadConfig reads a yaml config file and overlays it on the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid configuration")
	}

	return cfg, nil
}

// OpenStore builds the SessionStore matching the configured scope.
func (c *Config) OpenStore() (SessionStore, error) {
	switch c.Scope {
	case ScopeMemory:
		return NewMemoryStore(), nil
	case ScopeSQLite:
		return NewBunStore(c.SessionPath, c.Profile)
	default:
		return NewFileStore(c.SessionPath), nil
	}
}
