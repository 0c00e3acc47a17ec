package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Datadir     string
	LogLevel    int
	HistoryFile string
	ShowDecimal bool
	MaxSessions int
}

func (c *Config) String() string {
	json, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	Datadir     = "DATADIR"
	LogLevel    = "LOG_LEVEL"
	HistoryFile = "HISTORY_FILE"
	ShowDecimal = "SHOW_DECIMAL"
	MaxSessions = "MAX_SESSIONS"

	defaultDatadir     = btcutil.AppDataDir("scriptsim", false)
	defaultLogLevel    = 4
	defaultShowDecimal = true
	defaultMaxSessions = 64

	historyFileName = "history"
)

func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("SCRIPTSIM")
	viper.AutomaticEnv()

	viper.SetDefault(Datadir, defaultDatadir)
	viper.SetDefault(LogLevel, defaultLogLevel)
	viper.SetDefault(ShowDecimal, defaultShowDecimal)
	viper.SetDefault(MaxSessions, defaultMaxSessions)

	if err := initDatadir(); err != nil {
		return nil, fmt.Errorf("error while creating datadir: %s", err)
	}

	datadir := viper.GetString(Datadir)
	historyFile := viper.GetString(HistoryFile)
	if historyFile == "" {
		historyFile = filepath.Join(datadir, historyFileName)
	}

	cfg := &Config{
		Datadir:     datadir,
		LogLevel:    viper.GetInt(LogLevel),
		HistoryFile: historyFile,
		ShowDecimal: viper.GetBool(ShowDecimal),
		MaxSessions: viper.GetInt(MaxSessions),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}
	if c.LogLevel < int(log.PanicLevel) || c.LogLevel > int(log.TraceLevel) {
		return fmt.Errorf(
			"invalid log level %d, must be between %d and %d",
			c.LogLevel, log.PanicLevel, log.TraceLevel,
		)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("invalid max sessions, must be at least 1")
	}
	return nil
}

func initDatadir() error {
	datadir := viper.GetString(Datadir)
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
