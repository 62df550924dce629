package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDepthStr(t *testing.T) {
	depths, err := ParseDepthStr("")
	require.NoError(t, err)
	assert.Nil(t, depths)

	depths, err = ParseDepthStr("2")
	require.NoError(t, err)
	assert.Equal(
		t,
		map[int]struct{}{
			2: {},
		},
		depths,
	)

	depths, err = ParseDepthStr("1-3")
	require.NoError(t, err)
	assert.Equal(
		t,
		map[int]struct{}{
			1: {},
			2: {},
			3: {},
		},
		depths,
	)

	depths, err = ParseDepthStr("0-2,5")
	require.NoError(t, err)
	assert.Equal(
		t,
		map[int]struct{}{
			0: {},
			1: {},
			2: {},
			5: {},
		},
		depths,
	)

	invalidInputs := []string{
		"3-1",
		"a-b",
		"1,",
		"-1",
		"1--3",
		"1 - 3",
	}

	for _, input := range invalidInputs {
		_, err := ParseDepthStr(input)
		assert.Error(t, err, "input %q", input)
	}
}
