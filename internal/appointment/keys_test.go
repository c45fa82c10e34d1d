package appointment

import (
	"sort"
	"testing"
	"time"
)

var bucharest = time.FixedZone("EET", 2*3600)

// TestGenerateKey_LocalWallClock tests that the key carries the local
// wall-clock digits regardless of the zone's UTC offset
func TestGenerateKey_LocalWallClock(t *testing.T) {
	norm := NewFixedNormalizer(120)
	at := time.Date(2024, 5, 20, 10, 0, 0, 0, bucharest)

	key := GenerateKey(at, norm)

	if key != "2024-05-20T10_00_00M000Z" {
		t.Errorf("Expected 2024-05-20T10_00_00M000Z, got %s", key)
	}
}

// TestGenerateKey_ParseKey_RoundTrip tests that ParseKey inverts GenerateKey
func TestGenerateKey_ParseKey_RoundTrip(t *testing.T) {
	norm := NewFixedNormalizer(120)
	at := time.Date(2024, 11, 3, 14, 30, 45, 500*1e6, bucharest)

	key := GenerateKey(at, norm)
	back, err := ParseKey(key, norm)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !back.Equal(at) {
		t.Errorf("Expected %v, got %v", at, back)
	}
}

// TestGenerateKey_Ordering tests that keys sort in chronological order
func TestGenerateKey_Ordering(t *testing.T) {
	norm := NewFixedNormalizer(120)
	times := []time.Time{
		time.Date(2024, 5, 20, 9, 0, 0, 0, bucharest),
		time.Date(2024, 5, 20, 10, 30, 0, 0, bucharest),
		time.Date(2024, 5, 21, 8, 0, 0, 0, bucharest),
		time.Date(2024, 12, 1, 23, 59, 0, 0, bucharest),
	}

	keys := make([]string, len(times))
	for i, at := range times {
		keys[i] = GenerateKey(at, norm)
	}

	if !sort.StringsAreSorted(keys) {
		t.Errorf("Expected keys in chronological order, got %v", keys)
	}
}

// TestGenerateKey_ZeroDefaultsToNow tests the zero-time fallback
func TestGenerateKey_ZeroDefaultsToNow(t *testing.T) {
	norm := NewFixedNormalizer(0)

	key := GenerateKey(time.Time{}, norm)
	parsed, err := ParseKey(key, norm)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if time.Since(parsed) > time.Minute {
		t.Errorf("Expected a key near now, got %v", parsed)
	}
}

// TestParseKey_Invalid rejects malformed keys
func TestParseKey_Invalid(t *testing.T) {
	norm := NewFixedNormalizer(0)

	if _, err := ParseKey("not-a-key", norm); err == nil {
		t.Error("Expected error for malformed key")
	}
}

// TestKeyDate_KeyHour tests positional component extraction
func TestKeyDate_KeyHour(t *testing.T) {
	key := "2024-05-20T10_00_00M000Z"

	if got := KeyDate(key); got != "2024-05-20" {
		t.Errorf("Expected 2024-05-20, got %s", got)
	}
	if got := KeyHour(key); got != "10" {
		t.Errorf("Expected 10, got %s", got)
	}
	if KeyDate("short") != "" || KeyHour("short") != "" {
		t.Error("Expected empty components for short keys")
	}
}

// TestNormalizer_Inverse tests ToStorage and FromStorage as exact inverses
func TestNormalizer_Inverse(t *testing.T) {
	for _, minutes := range []int{-480, -60, 0, 120, 330} {
		norm := NewFixedNormalizer(minutes)
		at := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

		if got := norm.FromStorage(norm.ToStorage(at)); !got.Equal(at) {
			t.Errorf("Offset %d: expected %v, got %v", minutes, at, got)
		}
	}
}

// TestNormalizer_StorageRendering tests that the shifted instant renders the
// local wall clock in UTC
func TestNormalizer_StorageRendering(t *testing.T) {
	norm := NewFixedNormalizer(120)
	at := time.Date(2024, 5, 20, 10, 0, 0, 0, bucharest)

	rendered := norm.ToStorage(at).UTC().Format("15:04")
	if rendered != "10:00" {
		t.Errorf("Expected storage rendering 10:00, got %s", rendered)
	}
}
