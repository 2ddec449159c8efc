// Package config reads and writes dhtml.json, the project
// configuration for the demo server.
package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arkenidar/dhtml/internal/errors"
	"github.com/arkenidar/dhtml/pkg/demo"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "dhtml.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Config represents the complete dhtml.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Server contains HTTP/WebSocket server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Demos sizes the demo instances served to each session.
	Demos DemosConfig `json:"demos,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// AllowedOrigins restricts WebSocket origins. Empty allows
	// same-host origins only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`

	// ShutdownTimeout is the graceful shutdown bound (e.g. "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// DemosConfig sizes the demos.
type DemosConfig struct {
	// Checkboxes is the number of checkboxes in the panel.
	Checkboxes int `json:"checkboxes,omitempty"`

	// Synchro is the number of mirrored inputs.
	Synchro int `json:"synchro,omitempty"`

	// Multipliers is the ordered multiplier field layout.
	Multipliers []FieldConfig `json:"multipliers,omitempty"`
}

// FieldConfig is one multiplier field in dhtml.json.
type FieldConfig struct {
	// Role is "shared" or "factor".
	Role string `json:"role"`

	// Value is the field's initial text.
	Value string `json:"value"`
}

// New creates a Config with default values.
func New() *Config {
	def := demo.DefaultConfig()
	fields := make([]FieldConfig, len(def.MultiplierFields))
	for i, f := range def.MultiplierFields {
		role := "factor"
		if f.Role == demo.RoleShared {
			role = "shared"
		}
		fields[i] = FieldConfig{Role: role, Value: f.Value}
	}
	return &Config{
		Name: "dhtml",
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Demos: DemosConfig{
			Checkboxes:  def.CheckboxCount,
			Synchro:     def.SynchroWidth,
			Multipliers: fields,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for dhtml.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("No dhtml.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'dhtml serve' from the project root, or create dhtml.json")
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").
			WithDetail("Failed to parse dhtml.json: " + err.Error()).
			WithSuggestion("Check that dhtml.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromWorkingDir reads configuration from the current directory,
// falling back to defaults when no file exists.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("E102").Wrap(err)
	}
	cfg, err := Load(wd)
	if err != nil {
		var ce *errors.Error
		if stderrors.As(err, &ce) && ce.Code == "E101" {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E105").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E105").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	def := New()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Demos.Checkboxes == 0 {
		c.Demos.Checkboxes = def.Demos.Checkboxes
	}
	if c.Demos.Synchro == 0 {
		c.Demos.Synchro = def.Demos.Synchro
	}
	if c.Demos.Multipliers == nil {
		c.Demos.Multipliers = def.Demos.Multipliers
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E103").
			WithDetail(fmt.Sprintf("Port %d is outside 1-65535", c.Server.Port)).
			WithSuggestion("Set server.port to a valid TCP port")
	}
	if c.Server.Host == "" {
		return errors.New("E103").
			WithDetail("Host is empty").
			WithSuggestion("Set server.host, e.g. \"localhost\"")
	}
	if _, err := c.DemoConfig(); err != nil {
		return err
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return err
	}
	return nil
}

// Address returns the listen address, e.g. "localhost:3000".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// URL returns the server URL.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Address())
}

// ShutdownTimeout parses the configured shutdown bound.
func (c *Config) ShutdownTimeout() (time.Duration, error) {
	if c.Server.ShutdownTimeout == "" {
		return DefaultShutdownTimeout, nil
	}
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0, errors.New("E103").
			WithDetail("Bad shutdownTimeout: " + err.Error()).
			WithSuggestion("Use a Go duration such as \"10s\"")
	}
	return d, nil
}

// DemoConfig converts the JSON demo sizes into the demo package's
// configuration, validating counts and field roles.
func (c *Config) DemoConfig() (demo.Config, error) {
	if c.Demos.Checkboxes < 1 {
		return demo.Config{}, errors.New("E104").
			WithDetail(fmt.Sprintf("demos.checkboxes is %d; the panel needs at least one box", c.Demos.Checkboxes))
	}
	if c.Demos.Synchro < 2 {
		return demo.Config{}, errors.New("E104").
			WithDetail(fmt.Sprintf("demos.synchro is %d; mirroring needs at least two inputs", c.Demos.Synchro))
	}

	fields := make([]demo.Field, len(c.Demos.Multipliers))
	for i, f := range c.Demos.Multipliers {
		switch f.Role {
		case "shared":
			fields[i] = demo.Field{Role: demo.RoleShared, Value: f.Value}
		case "factor":
			fields[i] = demo.Field{Role: demo.RoleFactor, Value: f.Value}
		default:
			return demo.Config{}, errors.New("E104").
				WithDetail(fmt.Sprintf("demos.multipliers[%d].role is %q", i, f.Role)).
				WithSuggestion("Use \"shared\" or \"factor\"")
		}
	}
	if len(fields) == 0 {
		return demo.Config{}, errors.New("E104").
			WithDetail("demos.multipliers is empty")
	}

	return demo.Config{
		CheckboxCount:    c.Demos.Checkboxes,
		SynchroWidth:     c.Demos.Synchro,
		MultiplierFields: fields,
	}, nil
}
