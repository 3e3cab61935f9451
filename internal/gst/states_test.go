package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbook/internal/gst"
)

func TestStates(t *testing.T) {
	states := gst.States()
	assert.Len(t, states, 29)
	assert.Equal(t, "02", states[0].Code)
	assert.Equal(t, "Himachal Pradesh", states[0].Name)

	seen := map[string]bool{}
	for _, s := range states {
		assert.Len(t, s.Code, 2)
		assert.False(t, seen[s.Code], "duplicate code %s", s.Code)
		seen[s.Code] = true
	}
}

func TestStateCode(t *testing.T) {
	code, ok := gst.StateCode("Maharashtra")
	assert.True(t, ok)
	assert.Equal(t, "27", code)

	code, ok = gst.StateCode("  west   BENGAL ")
	assert.True(t, ok)
	assert.Equal(t, "19", code)

	_, ok = gst.StateCode("Ladakh")
	assert.False(t, ok)
}

func TestSameState(t *testing.T) {
	assert.True(t, gst.SameState("Maharashtra", "maharashtra"))
	assert.True(t, gst.SameState(" Uttar  Pradesh", "uttar pradesh "))
	assert.False(t, gst.SameState("Maharashtra", "Karnataka"))
}
