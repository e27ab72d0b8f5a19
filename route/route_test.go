package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	var s Slot
	assert.False(t, s.Failed())
	assert.Nil(t, s.Failure())

	s.Fail(Failure{Code: 500, Message: "boom", Details: map[string]any{"region": "modal"}})
	require.True(t, s.Failed())
	assert.Equal(t, 500, s.Failure().Code)
	assert.Equal(t, "modal", s.Failure().Details["region"])
	assert.Equal(t, "500: boom", s.Failure().Error())

	s.Clear()
	assert.False(t, s.Failed())
}

func TestFailureErrorWithoutCode(t *testing.T) {
	assert.Equal(t, "not found", Failure{Message: "not found"}.Error())
}
