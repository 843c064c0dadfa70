package session

import "testing"

// TestFieldFromString covers the tri-state parse: empty, number, pending
// text, including comma decimal separators.
func TestFieldFromString(t *testing.T) {
	tests := []struct {
		in      string
		set     bool
		val     float64
		display string
	}{
		{"", false, 0, ""},
		{"   ", false, 0, ""},
		{"80", true, 80, "80"},
		{"82.5", true, 82.5, "82.5"},
		{"82,5", true, 82.5, "82.5"},
		{"0", true, 0, "0"},
		{"80.", false, 0, "80."},
		{"abc", false, 0, "abc"},
	}
	for _, tt := range tests {
		f := FieldFromString(tt.in)
		if f.IsSet() != tt.set {
			t.Errorf("FieldFromString(%q).IsSet() = %v, want %v", tt.in, f.IsSet(), tt.set)
		}
		if f.Value() != tt.val {
			t.Errorf("FieldFromString(%q).Value() = %v, want %v", tt.in, f.Value(), tt.val)
		}
		if f.String() != tt.display {
			t.Errorf("FieldFromString(%q).String() = %q, want %q", tt.in, f.String(), tt.display)
		}
	}
}

// TestFieldFormatting verifies integral values render without a decimal
// point and fractional values keep their precision.
func TestFieldFormatting(t *testing.T) {
	tests := []struct {
		val  float64
		want string
	}{
		{60, "60"},
		{62.5, "62.5"},
		{61.25, "61.25"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FieldOf(tt.val).String(); got != tt.want {
			t.Errorf("FieldOf(%v).String() = %q, want %q", tt.val, got, tt.want)
		}
	}
}

// TestFieldWirePointers verifies unset and pending fields marshal to null.
func TestFieldWirePointers(t *testing.T) {
	if p := (Field{}).Ptr(); p != nil {
		t.Errorf("unset Ptr = %v, want nil", *p)
	}
	if p := FieldFromString("8x").IntPtr(); p != nil {
		t.Errorf("pending IntPtr = %v, want nil", *p)
	}
	if p := FieldOf(62.5).Ptr(); p == nil || *p != 62.5 {
		t.Errorf("value Ptr = %v, want 62.5", p)
	}
	if p := FieldOf(8.6).IntPtr(); p == nil || *p != 9 {
		t.Errorf("IntPtr = %v, want rounded 9", p)
	}
}

// TestFieldZeroIsDistinctFromUnset verifies a concrete 0 (bodyweight) is
// not "no value entered".
func TestFieldZeroIsDistinctFromUnset(t *testing.T) {
	zero := FieldOf(0)
	if !zero.IsSet() || zero.IsEmpty() {
		t.Error("FieldOf(0) should be a concrete value")
	}
	var unset Field
	if unset.IsSet() || !unset.IsEmpty() {
		t.Error("zero Field should be unset")
	}
}
