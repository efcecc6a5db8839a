package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Version is reported by the health endpoint and the CLI
const Version = "1.0.0"

// SchemeConfig represents server scheme configuration
type SchemeConfig struct {
	Address    string `json:"address" mapstructure:"address"`
	HTTPPort   int    `json:"http_port" mapstructure:"http_port"`
	HTTPSPort  int    `json:"https_port" mapstructure:"https_port"`
	ForceHTTPS bool   `json:"force_https" mapstructure:"force_https"`
	CertFile   string `json:"cert_file" mapstructure:"cert_file"`
	KeyFile    string `json:"key_file" mapstructure:"key_file"`
	EnableH2C  bool   `json:"enable_h2c" mapstructure:"enable_h2c"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `json:"format" mapstructure:"format"` // console, json
}

// MySQLConfig holds the connection settings of the MySQL audit sink
type MySQLConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	User     string `json:"user" mapstructure:"user"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// AuditConfig selects where cipher requests are recorded
type AuditConfig struct {
	Driver string      `json:"driver" mapstructure:"driver"` // bolt, mysql, none
	MySQL  MySQLConfig `json:"mysql" mapstructure:"mysql"`
}

// Config represents the main configuration
type Config struct {
	Scheme    SchemeConfig `json:"scheme" mapstructure:"scheme"`
	Log       LogConfig    `json:"log" mapstructure:"log"`
	Audit     AuditConfig  `json:"audit" mapstructure:"audit"`
	CORS      []string     `json:"cors_origins" mapstructure:"cors_origins"` // empty allows any origin
	DataDir   string       `json:"data_dir" mapstructure:"data_dir"`
	JWTSecret string       `json:"jwt_secret" mapstructure:"jwt_secret"`
	JWTExpire int          `json:"jwt_expire" mapstructure:"jwt_expire"` // hours
}

// DefaultJWTSecret is used when no jwt_secret is configured
const DefaultJWTSecret = "classical-cipher-secret-change-me"

var (
	cfg  *Config
	once sync.Once
)

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	// Scheme defaults
	v.SetDefault("scheme.address", "0.0.0.0")
	v.SetDefault("scheme.http_port", 5000)
	v.SetDefault("scheme.https_port", -1)
	v.SetDefault("scheme.force_https", false)
	v.SetDefault("scheme.enable_h2c", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Audit defaults
	v.SetDefault("audit.driver", "bolt")
	v.SetDefault("audit.mysql.host", "localhost")
	v.SetDefault("audit.mysql.port", 3306)
	v.SetDefault("audit.mysql.user", "cipher")
	v.SetDefault("audit.mysql.database", "cipher")

	// Other defaults
	v.SetDefault("data_dir", "./data")
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("jwt_expire", 24)
}

// New reads the configuration through v. Missing config files are not an error.
func New(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("$HOME/.classical-cipher")

	SetDefaults(v)

	// Environment variables
	v.SetEnvPrefix("CLASSICAL_CIPHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("Config file not found, using defaults")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the process configuration once
func Load() *Config {
	once.Do(func() {
		var err error
		cfg, err = New(viper.GetViper())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load config")
		}
	})
	return cfg
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Audit.Driver {
	case "bolt", "mysql", "none":
	default:
		return fmt.Errorf("unsupported audit driver: %q", c.Audit.Driver)
	}
	if c.Scheme.HTTPPort <= 0 || c.Scheme.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Scheme.HTTPPort)
	}
	return nil
}

// GetHTTPAddr returns the HTTP listen address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Scheme.Address, c.Scheme.HTTPPort)
}

// GetHTTPSAddr returns the HTTPS listen address
func (c *Config) GetHTTPSAddr() string {
	if c.Scheme.HTTPSPort <= 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Scheme.Address, c.Scheme.HTTPSPort)
}

// IsHTTPSEnabled returns whether HTTPS is enabled
func (c *Config) IsHTTPSEnabled() bool {
	return c.Scheme.HTTPSPort > 0 && c.Scheme.CertFile != "" && c.Scheme.KeyFile != ""
}

// IsH2CEnabled returns whether HTTP/2 cleartext is enabled
func (c *Config) IsH2CEnabled() bool {
	return c.Scheme.EnableH2C
}
