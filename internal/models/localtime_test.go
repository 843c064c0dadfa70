package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestLocalTimeRoundTrip verifies the wire form carries no offset and
// survives a marshal/unmarshal cycle.
func TestLocalTimeRoundTrip(t *testing.T) {
	orig := NewLocalTime(time.Date(2026, 3, 14, 18, 30, 45, 987000000, time.Local))

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-03-14T18:30:45"` {
		t.Errorf("wire form = %s, want \"2026-03-14T18:30:45\"", data)
	}

	var parsed LocalTime
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !parsed.Equal(orig.Time) {
		t.Errorf("round trip = %v, want %v", parsed.Time, orig.Time)
	}
}

// TestLocalTimeTruncatesSubsecond verifies NewLocalTime drops fractional
// seconds so durations computed from two timestamps stay whole-second.
func TestLocalTimeTruncatesSubsecond(t *testing.T) {
	lt := NewLocalTime(time.Date(2026, 1, 2, 3, 4, 5, 600000000, time.Local))
	if lt.Nanosecond() != 0 {
		t.Errorf("nanoseconds = %d, want 0", lt.Nanosecond())
	}
}

// TestLocalTimeUnmarshalNull verifies null and empty decode to the zero
// time instead of erroring.
func TestLocalTimeUnmarshalNull(t *testing.T) {
	for _, raw := range []string{`null`, `""`} {
		var lt LocalTime
		if err := json.Unmarshal([]byte(raw), &lt); err != nil {
			t.Errorf("unmarshal %s: %v", raw, err)
			continue
		}
		if !lt.IsZero() {
			t.Errorf("unmarshal %s = %v, want zero time", raw, lt.Time)
		}
	}
}

// TestLocalTimeUnmarshalRejectsOffset verifies an offset-bearing timestamp
// is not silently accepted.
func TestLocalTimeUnmarshalRejectsOffset(t *testing.T) {
	var lt LocalTime
	if err := json.Unmarshal([]byte(`"2026-03-14T18:30:45+02:00"`), &lt); err == nil {
		t.Error("expected error for offset-bearing timestamp")
	}
}
