package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv loads each file into the process environment, defaulting to .env.
// Variables that are already set keep their values. A file that cannot be
// read is skipped with a warning.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			Logger.WithError(err).WithField("file", file).Warn("Env file not loaded, using process environment")
			continue
		}
		Logger.WithField("file", file).Debug("Env file loaded")
	}
}
