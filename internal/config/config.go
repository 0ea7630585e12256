package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port string `json:"port"`

	// DBDriver: "memory" (default) | "postgres" | "sqlite"
	DBDriver string `json:"dbDriver"`
	DBDSN    string `json:"dbDsn"`

	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
	AppName   string `json:"appName"`
}

func def() Config {
	return Config{
		Port:      "8080",
		DBDriver:  DriverMemory,
		DBDSN:     "",
		LogLevel:  "info",
		LogFormat: "text",
		AppName:   "petclinic",
	}
}

// Load resuelve la config en capas: defaults <- archivo JSON (-config) <- env <- flags.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("petclinic", flag.ContinueOnError)

	configPath := fs.String("config", "", "path to JSON config file")
	port := fs.String("port", "", "listen port")
	dbDriver := fs.String("db-driver", "", "storage backend: memory|postgres|sqlite")
	dbDSN := fs.String("db-dsn", "", "database DSN")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	c := def()

	if *configPath != "" {
		loaded, err := loadJSON(*configPath)
		if err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
		c = loaded
	}

	c.Port = getenv("PORT", c.Port)
	c.DBDriver = getenv("DB_DRIVER", c.DBDriver)
	c.DBDSN = getenv("DB_DSN", c.DBDSN)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("LOG_FORMAT", c.LogFormat)
	c.AppName = getenv("APP_NAME", c.AppName)

	if *port != "" {
		c.Port = *port
	}
	if *dbDriver != "" {
		c.DBDriver = *dbDriver
	}
	if *dbDSN != "" {
		c.DBDSN = *dbDSN
	}

	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unknown db driver %q", c.DBDriver)
	}

	if c.DBDriver != DriverMemory && strings.TrimSpace(c.DBDSN) == "" {
		return Config{}, fmt.Errorf("db driver %q requires a DSN", c.DBDriver)
	}

	return c, nil
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
