package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const DefaultFile = ".env"

// Load подгружает переменные из существующих env-файлов (по умолчанию .env).
// Уже выставленные переменные окружения файлы не перетирают.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultFile}
	}

	existing := make([]string, 0, len(files))
	for _, file := range files {
		_, err := os.Stat(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", file, err)
		}
		existing = append(existing, file)
	}

	if len(existing) == 0 {
		return nil
	}

	err := godotenv.Load(existing...)
	if err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// ApplyFlags переносит -port и -log-level в PORT и LOG_LEVEL.
func ApplyFlags(args []string) error {
	flags := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	port := flags.String("port", "", "Server port (overrides PORT environment variable)")
	logLevel := flags.String("log-level", "", "Log level (overrides LOG_LEVEL environment variable)")

	err := flags.Parse(args)
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	overrides := map[string]string{
		"PORT":      *port,
		"LOG_LEVEL": *logLevel,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		err := os.Setenv(key, value)
		if err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", key, err)
		}
	}

	return nil
}
