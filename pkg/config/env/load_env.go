package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file. ENV_PATH
// overrides the default path when set; a missing file is only an error
// in local mode.
func LoadDotEnv(defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if os.Getenv("APP_ENV") == "local" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}
