package redis

import "fmt"

const (
	// KeyPrefixResult is the prefix for cached ad-hoc results
	KeyPrefixResult = "wfd:result:"
	// KeyLive is the key holding the latest live result
	KeyLive = "wfd:live"
	// KeyAllResults is the key for the set of all cached result keys
	KeyAllResults = "wfd:results:all"
)

// ResultKey returns the Redis key for a result by content hash
func ResultKey(hash string) string {
	return KeyPrefixResult + hash
}

// AllResultsKey returns the key for the set of all result hashes
func AllResultsKey() string {
	return KeyAllResults
}

// ExtractResultHash extracts the content hash from a Redis key
func ExtractResultHash(key string) (string, error) {
	if len(key) <= len(KeyPrefixResult) || key[:len(KeyPrefixResult)] != KeyPrefixResult {
		return "", fmt.Errorf("invalid result key: %s", key)
	}
	return key[len(KeyPrefixResult):], nil
}
