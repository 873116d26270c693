package auth

import (
	"crypto/subtle"
	"errors"
	"os"
)

var apiKey []byte

func InitAPIKey() error {
	key, ok := os.LookupEnv("YTMETA_API_KEY")
	if !ok || key == "" {
		return errors.New("Required environment variable YTMETA_API_KEY not set")
	}

	apiKey = []byte(key)
	return nil
}

// SetAPIKey overrides the shared secret, bypassing the environment. Meant
// for tests.
func SetAPIKey(key string) {
	apiKey = []byte(key)
}

func CheckAPIKey(candidate string) bool {
	if len(apiKey) == 0 {
		return false
	}

	return subtle.ConstantTimeCompare(apiKey, []byte(candidate)) == 1
}
