package appointment

import (
	"fmt"
	"strings"
	"time"
)

// keyLayout renders an instant as ISO-8601 UTC with millisecond precision.
const keyLayout = "2006-01-02T15:04:05.000Z"

var (
	keyEncoder = strings.NewReplacer(":", "_", ".", "M")
	keyDecoder = strings.NewReplacer("_", ":", "M", ".")
)

// GenerateKey derives the storage key for an appointment scheduled at t.
// The key is the storage-shifted instant rendered in UTC, with the path
// characters ':' and '.' substituted by '_' and 'M'. Keys sort
// lexicographically in the same order as their instants, and ParseKey
// recovers the instant exactly. A zero t defaults to the current time.
func GenerateKey(t time.Time, n Normalizer) string {
	if t.IsZero() {
		t = time.Now()
	}
	iso := n.ToStorage(t).UTC().Format(keyLayout)
	return keyEncoder.Replace(iso)
}

// ParseKey inverts GenerateKey, returning the appointment's local instant.
func ParseKey(key string, n Normalizer) (time.Time, error) {
	iso := keyDecoder.Replace(key)
	t, err := time.Parse(keyLayout, iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment key %q: %w", key, err)
	}
	return n.FromStorage(t), nil
}

// KeyDate extracts the "yyyy-MM-dd" date component of an appointment key.
// The key structure is fixed, so the component is positional.
func KeyDate(key string) string {
	if len(key) < 10 {
		return ""
	}
	return key[:10]
}

// KeyHour extracts the two-digit hour component of an appointment key.
func KeyHour(key string) string {
	if len(key) < 13 {
		return ""
	}
	return key[11:13]
}
