package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TASKS_SERVER_PORT or TASKS_DATABASE_URL.
const EnvPrefix = "TASKS"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":            "server.port",
	"log-level":       "server.log_level",
	"database-driver": "database.driver",
	"database-url":    "database.url",
}

// Option customizes Load.
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	flags      *pflag.FlagSet
}

// WithConfigFile makes Load read path (YAML, JSON or TOML, by extension).
// An empty path is ignored.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithFlags binds the flags registered by RegisterFlags. Flags only take
// effect when explicitly set and then override every other source.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(o *loadOptions) {
		o.flags = fs
	}
}

// RegisterFlags adds the server's configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML, JSON or TOML configuration file")
	fs.Int("port", 0, "HTTP listen port")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("database-driver", "", "task store driver (mongo, postgres, memory)")
	fs.String("database-url", "", "task store connection string")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8081)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("server.service_name", "task-api")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.url", "")
	v.SetDefault("database.name", "tasks")
	v.SetDefault("database.connect_timeout_seconds", 8)
	v.SetDefault("database.query_timeout_seconds", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("cors.allowed_origins", "*")
}

// Load configuration from defaults, an optional config file, environment
// variables and command-line flags, in increasing order of precedence.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", o.configFile, err)
		}
	}

	if o.flags != nil {
		for name, key := range flagKeys {
			if f := o.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
