package appointment

import "time"

// Normalizer converts between local wall-clock dates and the store's UTC
// convention. The store renders every instant in UTC, so a date is shifted
// by the session's UTC offset before writing; the store's own UTC conversion
// then reproduces the original wall-clock digits. Reads apply the inverse
// shift. ToStorage and FromStorage are exact inverses for a fixed offset.
//
// The offset is the session's, captured once, and is applied to every date
// regardless of its own zone rules; dates on the far side of a DST
// transition therefore shift by the wrong amount. Known limitation carried
// over from the store convention.
type Normalizer struct {
	offset time.Duration
}

// NewNormalizer captures the process-local UTC offset at the current moment.
func NewNormalizer() Normalizer {
	_, seconds := time.Now().Zone()
	return Normalizer{offset: time.Duration(seconds) * time.Second}
}

// NewFixedNormalizer pins the session offset, in minutes east of UTC.
func NewFixedNormalizer(offsetMinutes int) Normalizer {
	return Normalizer{offset: time.Duration(offsetMinutes) * time.Minute}
}

// ToStorage shifts a local date forward by the session offset so the store's
// UTC rendering matches local wall clock.
func (n Normalizer) ToStorage(t time.Time) time.Time {
	return t.Add(n.offset)
}

// FromStorage undoes the write shift on a date read back from the store.
func (n Normalizer) FromStorage(t time.Time) time.Time {
	return t.Add(-n.offset)
}

// Offset returns the session offset the normalizer was built with.
func (n Normalizer) Offset() time.Duration {
	return n.offset
}
