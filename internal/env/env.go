// Package env loads KEY=VALUE pairs from a .env file into the process
// environment, so ${VAR} references in the YAML config and ESPLORA_* settings
// can live in a gitignored file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".env"

// Load reads path (DefaultFile when empty) with viper's dotenv reader and
// exports every key with os.Setenv. Keys are upper-cased because viper
// folds them to lower case. Values from the file override the existing
// environment.
//
// A missing file is not an error: the tool works from the system
// environment alone. It returns the number of variables set.
func Load(path string) (int, error) {
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("env file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return 0, fmt.Errorf("env file %s: %w", path, err)
	}

	keys := v.AllKeys()
	for _, key := range keys {
		if err := os.Setenv(strings.ToUpper(key), v.GetString(key)); err != nil {
			return 0, fmt.Errorf("env file %s: set %s: %w", path, key, err)
		}
	}
	return len(keys), nil
}
