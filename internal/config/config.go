package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// envFiles are loaded in order; earlier files win because godotenv never
// overrides a variable that is already set.
var envFiles = []string{".env.local", ".env"}

// LoadEnv loads whichever of envFiles exist in the working directory.
func LoadEnv() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			logrus.WithError(err).Warnf("could not load %s", name)
		}
	}
}

// GetEnv returns the trimmed value of key, or fallback when it is unset or blank.
func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetDurationEnv parses key with time.ParseDuration, returning fallback when
// the variable is unset or malformed.
func GetDurationEnv(key string, fallback time.Duration) time.Duration {
	v := GetEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithError(err).Warnf("ignoring %s", key)
		return fallback
	}
	return d
}
