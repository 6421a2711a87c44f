package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type protoNumber int

func (p protoNumber) String() string { return "proto-" + string(rune('0'+int(p))) }

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "IPv4.TTL", NormalizeID(FieldID{Layer: "IPv4", Name: "TTL"}))
	assert.Equal(t, "payload", NormalizeID("payload"))
	assert.Equal(t, "proto-6", NormalizeID(protoNumber(6)))
	assert.Equal(t, "42", NormalizeID(42))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionUp, d)

	d, err = ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, DirectionDown, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
