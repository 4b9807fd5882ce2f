package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSwapCommand(t *testing.T) {
	req, err := ParseSwapCommand("swap 100 BEE")
	require.NoError(t, err)
	assert.Equal(t, "100", req.Quantity)
	assert.Equal(t, "BEE", req.Symbol)

	req, err = ParseSwapCommand("12.5 leo")
	require.NoError(t, err)
	assert.Equal(t, "12.5", req.Quantity)
	assert.Equal(t, "LEO", req.Symbol)

	req, err = ParseSwapCommand("  swap 3 swap.hive  ")
	require.NoError(t, err)
	assert.Equal(t, "3", req.Quantity)
	assert.Equal(t, "SWAP.HIVE", req.Symbol)
}

func TestParseSwapCommandRejectsMalformedInput(t *testing.T) {
	for _, command := range []string{"", "swap", "swap BEE 100", "abc BEE", "100"} {
		_, err := ParseSwapCommand(command)
		assert.Error(t, err, command)
	}
}

func TestNormalizeTokenSymbol(t *testing.T) {
	assert.Equal(t, "BEE", NormalizeTokenSymbol(" bee "))
	assert.Equal(t, "SWAP.HIVE", NormalizeTokenSymbol("swap.hive"))
}
