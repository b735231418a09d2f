package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterComponents_Idempotent(t *testing.T) {
	require.NoError(t, RegisterComponents())
	require.NoError(t, RegisterComponents())
}
