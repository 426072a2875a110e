package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTo(t *testing.T) {
	require.Equal(t, 24.2, RoundTo(24.221453, 1))
	require.Equal(t, 22.5, RoundTo(22.46, 1))
	require.Equal(t, 1180.0, RoundTo(1180.4, 0))
}
