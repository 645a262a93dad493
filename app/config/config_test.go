package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// clearEnv masks variables the host may set so defaults show through.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "1338" {
		t.Errorf("Port = %q, want 1338", cfg.Port)
	}
	if cfg.Driver != DriverMySQL {
		t.Errorf("Driver = %q, want mysql", cfg.Driver)
	}
	if cfg.StaticDir != "public" {
		t.Errorf("StaticDir = %q, want public", cfg.StaticDir)
	}
	if cfg.AutoMigrate {
		t.Error("AutoMigrate = true, want false")
	}
	if cfg.Addr() != ":1338" {
		t.Errorf("Addr() = %q, want :1338", cfg.Addr())
	}
}

func TestLoadEnvFileAndEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "PORT=9000\nDATABASE=fromfile\nDB_DRIVER=sqlite\nDB_AUTOMIGRATE=true\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("DATABASE", "fromenv")

	cfg, err := Load(viper.New(), dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000 from .env", cfg.Port)
	}
	if cfg.DBName != "fromenv" {
		t.Errorf("DBName = %q, want environment to win", cfg.DBName)
	}
	if cfg.Driver != DriverSQLite || !cfg.AutoMigrate {
		t.Errorf("Driver = %q AutoMigrate = %v", cfg.Driver, cfg.AutoMigrate)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(viper.New(), t.TempDir()); err == nil {
		t.Fatal("Load() expected error for unknown driver")
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{DBUser: "gantt", DBPassword: "secret", DBHost: "db", DBPort: "3307", DBName: "charts"}
	want := "gantt:secret@tcp(db:3307)/charts?charset=utf8mb4&parseTime=True&loc=UTC"
	if got := cfg.MySQLDSN(); got != want {
		t.Errorf("MySQLDSN() = %q, want %q", got, want)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(Config{LogLevel: "loud"}); err == nil {
		t.Error("NewLogger() expected error for bad level")
	}

	logFile := filepath.Join(t.TempDir(), "app.log")
	log, err := NewLogger(Config{LogLevel: "info", LogFile: logFile})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	log.Infow("hello", "component", "test")
	log.Debugw("hidden")
	log.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file missing entry: %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("debug entry written at info level: %s", data)
	}
}

func TestInitDBSQLite(t *testing.T) {
	log, err := NewLogger(Config{LogLevel: "error"})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	cfg := Config{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "gantt.db")}

	db, err := InitDB(cfg, log)
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error: %v", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}

	if _, err := InitDB(Config{Driver: DriverNeo4j}, log); err == nil {
		t.Error("InitDB(neo4j) expected error")
	}
}
