package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

const (
	maxWalkDepth = 25
)

// Drivers accepted in database.driver.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config represents the voxi configuration from voxi.yaml.
type Config struct {
	QueriesDir string `mapstructure:"queries_dir" json:"queries_dir"`

	Render   RenderConfig   `mapstructure:"render" json:"render"`
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Doctor   DoctorConfig   `mapstructure:"doctor" json:"doctor"`
}

// RenderConfig holds render command settings.
type RenderConfig struct {
	// Placeholder is inline, dollar or question.
	Placeholder string `mapstructure:"placeholder" json:"placeholder"`
	// Color is auto, always or never.
	Color string `mapstructure:"color" json:"color"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" json:"driver"`
	URL      string `mapstructure:"url" json:"url"`
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Name     string `mapstructure:"name" json:"name"`
	User     string `mapstructure:"user" json:"user"`
	Password string `mapstructure:"password" json:"password"`
	SSLMode  string `mapstructure:"sslmode" json:"sslmode"`
}

// DoctorConfig holds doctor command settings.
type DoctorConfig struct {
	QueriesDir string `mapstructure:"queries_dir" json:"queries_dir"`
	Verbose    bool   `mapstructure:"verbose" json:"verbose"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults. Variables from .env and .env.local
// in the working directory are exported before the environment is read.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	if err := LoadDotEnv("."); err != nil {
		return nil, "", err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VOXI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

// LoadDotEnv exports the variables of dir/.env, then dir/.env.local. Existing
// environment variables win over .env; .env.local overrides both. Missing
// files are ignored.
func LoadDotEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("loading %s: %w", envPath, err)
		}
	}

	localPath := filepath.Join(dir, ".env.local")
	if _, err := os.Stat(localPath); err == nil {
		if err := godotenv.Overload(localPath); err != nil {
			return fmt.Errorf("loading %s: %w", localPath, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("queries_dir", "queries")

	v.SetDefault("render.placeholder", "inline")
	v.SetDefault("render.color", "auto")

	v.SetDefault("database.driver", DriverPgx)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "prefer")

	v.SetDefault("doctor.queries_dir", "")
	v.SetDefault("doctor.verbose", false)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for voxi.yaml or voxi.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"voxi.yaml", "voxi.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// DriverName returns the database/sql driver name for database.driver.
func (c *Config) DriverName() (string, error) {
	switch d := strings.ToLower(c.Database.Driver); d {
	case "", DriverPgx:
		return DriverPgx, nil
	case DriverPostgres, DriverSQLite:
		return d, nil
	case "sqlite":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database.driver %q (want pgx, postgres or sqlite3)", c.Database.Driver)
	}
}

// HasDatabase reports whether any connection setting is configured.
func (c *Config) HasDatabase() bool {
	db := c.Database
	return db.URL != "" || db.Host != "" || db.Name != ""
}

// DSN returns the database connection string.
// If database.url is set, it's returned directly.
// For sqlite3 the database.name is used as the file name.
// Otherwise, builds a postgres URL from discrete fields.
func (c *Config) DSN() (string, error) {
	db := c.Database

	if db.URL != "" {
		return db.URL, nil
	}

	driver, err := c.DriverName()
	if err != nil {
		return "", err
	}
	if driver == DriverSQLite {
		if db.Name == "" {
			return "", fmt.Errorf("database.name is required for sqlite3 when database.url is not set")
		}
		return db.Name, nil
	}

	if db.Host == "" {
		return "", fmt.Errorf("database.host is required when database.url is not set")
	}
	if db.Name == "" {
		return "", fmt.Errorf("database.name is required when database.url is not set")
	}
	if db.User == "" {
		return "", fmt.Errorf("database.user is required when database.url is not set")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.Name,
	}

	if db.Password != "" {
		u.User = url.UserPassword(db.User, db.Password)
	} else {
		u.User = url.User(db.User)
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// ResolvedQueriesDir returns the effective queries_dir for a command,
// with command-specific override taking precedence over top-level.
func (c *Config) ResolvedQueriesDir(commandDir string) string {
	if commandDir != "" {
		return commandDir
	}
	return c.QueriesDir
}

// Placeholder parses a render placeholder mode. It reports inline=true for
// "inline" (or empty), otherwise the placeholder style to use.
func Placeholder(mode string) (style resolvers.PlaceholderStyle, inline bool, err error) {
	if mode == "" || strings.EqualFold(mode, "inline") {
		return 0, true, nil
	}
	style, err = resolvers.ParsePlaceholderStyle(mode)
	if err != nil {
		return 0, false, err
	}
	return style, false, nil
}

// PlaceholderStyle returns the placeholder style for the
// configured driver: dollar for PostgreSQL, question for SQLite.
func (c *Config) PlaceholderStyle() resolvers.PlaceholderStyle {
	if d, _ := c.DriverName(); d == DriverSQLite {
		return resolvers.Question
	}
	return resolvers.Dollar
}
