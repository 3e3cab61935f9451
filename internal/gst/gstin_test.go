package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbook/internal/gst"
)

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		gstin string
		want  bool
	}{
		{"documented_example", "27AABCU9603R1ZX", true},
		{"numeric_check_char", "29ABCDE1234F1Z5", true},
		{"alpha_entity_code", "07ABCDE1234FAZ1", true},
		{"fourteen_chars", "27AABCU9603R1Z", false},
		{"sixteen_chars", "27AABCU9603R1ZXX", false},
		{"empty", "", false},
		{"lowercase", "27aabcu9603r1zx", false},
		{"missing_z", "27AABCU9603R1YX", false},
		{"zero_entity_code", "27AABCU9603R0ZX", false},
		{"letter_in_state_code", "2AAABCU9603R1ZX", false},
		{"digit_in_pan_letters", "27AAB1U9603R1ZX", false},
		{"surrounding_space", " 27AABCU9603R1ZX", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gst.ValidateGSTIN(tt.gstin))
		})
	}
}

func TestStateFromGSTIN(t *testing.T) {
	t.Run("known_code", func(t *testing.T) {
		state, ok := gst.StateFromGSTIN("27AABCU9603R1ZX")
		assert.True(t, ok)
		assert.Equal(t, "Maharashtra", state)
	})

	t.Run("leading_zero_code", func(t *testing.T) {
		state, ok := gst.StateFromGSTIN("07ABCDE1234F1Z5")
		assert.True(t, ok)
		assert.Equal(t, "Delhi", state)
	})

	t.Run("unrecognized_code", func(t *testing.T) {
		// 38 (Ladakh) is a real jurisdiction but not in the table.
		state, ok := gst.StateFromGSTIN("38ABCDE1234F1Z5")
		assert.False(t, ok)
		assert.Empty(t, state)
	})

	t.Run("malformed", func(t *testing.T) {
		state, ok := gst.StateFromGSTIN("27AABCU9603R1Z")
		assert.False(t, ok)
		assert.Empty(t, state)
	})
}

func TestPANFromGSTIN(t *testing.T) {
	pan, ok := gst.PANFromGSTIN("27AABCU9603R1ZX")
	assert.True(t, ok)
	assert.Equal(t, "AABCU9603R", pan)

	_, ok = gst.PANFromGSTIN("bogus")
	assert.False(t, ok)
}
