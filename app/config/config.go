package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/spf13/viper"
)

// Store backends.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
	DriverNeo4j  = "neo4j"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	StaticDir   string `mapstructure:"STATIC_DIR"`

	Driver        string `mapstructure:"DB_DRIVER"`
	DBHost        string `mapstructure:"HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"MYSQL_USER"`
	DBPassword    string `mapstructure:"PASSWORD"`
	DBName        string `mapstructure:"DATABASE"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	AutoMigrate   bool   `mapstructure:"DB_AUTOMIGRATE"`
	Neo4jURI      string `mapstructure:"NEO4J_URI"`
	Neo4jUser     string `mapstructure:"NEO4J_USER"`
	Neo4jPassword string `mapstructure:"NEO4J_PASSWORD"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`
}

var defaults = map[string]any{
	"ENVIRONMENT":    "development",
	"PORT":           "1338",
	"STATIC_DIR":     "public",
	"DB_DRIVER":      DriverMySQL,
	"HOST":           "localhost",
	"DB_PORT":        "3306",
	"MYSQL_USER":     "root",
	"PASSWORD":       "",
	"DATABASE":       "gantt",
	"SQLITE_PATH":    "gantt.db",
	"DB_AUTOMIGRATE": false,
	"NEO4J_URI":      "neo4j://localhost:7687",
	"NEO4J_USER":     "neo4j",
	"NEO4J_PASSWORD": "password",
	"LOG_LEVEL":      "info",
	"LOG_FILE":       "",
}

// Load reads an optional .env file from dir and then the environment.
// Environment variables win over the file.
func Load(v *viper.Viper, dir string) (Config, error) {
	var cfg Config

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	switch cfg.Driver {
	case DriverMySQL, DriverSQLite, DriverNeo4j:
	default:
		return cfg, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// MySQLDSN returns the go-sql-driver connection string.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
