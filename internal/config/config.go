package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DB   DBConfig
	Log  LogConfig
	HTTP HTTPConfig
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	// Seed loads demo stores and users into an empty sqlite database.
	Seed bool
}

type LogConfig struct {
	Level string
	File  string
}

type HTTPConfig struct {
	Addr string
	// SessionTTL is how long an idle API session stays logged in.
	SessionTTL time.Duration
}

// New returns a viper instance with defaults and STOREFRONT_* env binding.
// Callers bind their flags into it before calling Load.
func New() *viper.Viper {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.seed", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "./storefront.log")
	v.SetDefault("http.addr", ":8081")
	v.SetDefault("http.session_ttl", "24h")
	return v
}

// Load reads an optional config file and materializes the settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config: %w", err)
		}
	}

	cfg := Config{
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			Name:     v.GetString("db.name"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			SSLMode:  v.GetString("db.sslmode"),
			Seed:     v.GetBool("db.seed"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		HTTP: HTTPConfig{
			Addr:       v.GetString("http.addr"),
			SessionTTL: v.GetDuration("http.session_ttl"),
		},
	}
	return cfg, nil
}

// Validate checks what is needed to open a connection. Password is checked
// separately since the CLI may still prompt for it.
func (c DBConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.Name == "" {
			return errors.New("database name (sqlite file) is required")
		}
	case DriverPostgres:
		var missing []string
		for _, p := range [][2]string{{"dbname", c.Name}, {"port", c.Port}, {"user", c.User}} {
			if p[1] == "" {
				missing = append(missing, p[0])
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing connection parameters: %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	return nil
}

// NeedsPassword reports whether a credential must be supplied before connecting.
func (c DBConfig) NeedsPassword() bool {
	return c.Driver == DriverPostgres && c.Password == ""
}

// DSN renders the driver-specific data source name.
func (c DBConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Name
	}
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		quote(c.Host), quote(c.Port), quote(c.Name), quote(c.User), quote(c.Password), quote(c.SSLMode))
}

// quote escapes a lib/pq key=value parameter.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

