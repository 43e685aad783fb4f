package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	MaxStatesKey = "STATESPACE_MAX_STATES"
	LogLevelKey  = "STATESPACE_LOG_LEVEL"
	DBKey        = "STATESPACE_DB"
)

type Environment struct {
	MaxStates int
	LogLevel  string
	DB        string
}

func Default() *Environment {
	return &Environment{
		MaxStates: 100000,
		LogLevel:  "info",
		DB:        "statespace.db",
	}
}

// LoadEnv reads the given .env files, or .env in the working directory, and
// then the process environment. Missing files and unset variables keep their
// defaults.
func LoadEnv(logger *zap.Logger, files ...string) *Environment {
	if logger == nil {
		logger = zap.NewNop()
	}
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Error loading .env file", zap.Error(err))
	}
	e := Default()
	if maxStates, ok := os.LookupEnv(MaxStatesKey); ok {
		n, err := strconv.Atoi(maxStates)
		if err != nil || n < 1 {
			logger.Warn("ignoring bad state budget",
				zap.String("key", MaxStatesKey),
				zap.String("value", maxStates),
			)
		} else {
			e.MaxStates = n
		}
	}
	if level, ok := os.LookupEnv(LogLevelKey); ok && level != "" {
		e.LogLevel = level
	}
	if db, ok := os.LookupEnv(DBKey); ok && db != "" {
		e.DB = db
	}
	return e
}
