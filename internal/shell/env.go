package shell

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file. The result is meant
// for WithEnv and takes precedence over the process environment.
func LoadEnvFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	shellLogger.Debug("Loaded %d variables from %s", len(vars), path)
	return vars, nil
}

// lookupEnv resolves a variable from the overlay first, then the process.
func lookupEnv(overlay map[string]string) func(string) string {
	return func(name string) string {
		if v, ok := overlay[name]; ok {
			return v
		}
		return os.Getenv(name)
	}
}
