package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvCompiler overrides compiler.binary when set.
const EnvCompiler = "TEXBUILD_COMPILER"

// envFiles are tried in order; godotenv.Load never overwrites variables the
// process already has.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first readable .env file. Absence is normal.
func loadEnvFiles() {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", "path", envPath, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", envPath)
		return
	}
}

func applyEnvOverrides(cfg *Config) {
	if bin := os.Getenv(EnvCompiler); bin != "" {
		cfg.Compiler.Binary = bin
	}
}
