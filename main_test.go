package main

import (
	"testing"

	"github.com/automoto/skirmish/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Defaults(t *testing.T) {
	cmd := NewRootCmd()

	level, err := cmd.Flags().GetString("level")
	require.NoError(t, err)
	assert.Equal(t, config.C.Level, level)

	watchCmd, _, err := cmd.Find([]string{"watch"})
	require.NoError(t, err)
	addr, err := watchCmd.Flags().GetString("addr")
	require.NoError(t, err)
	assert.Equal(t, "localhost:7373", addr)
}

func TestRootCmd_WatchFlags(t *testing.T) {
	cmd := NewRootCmd()
	watchCmd, _, err := cmd.Find([]string{"watch"})
	require.NoError(t, err)

	require.NoError(t, watchCmd.ParseFlags([]string{"--addr", "example.org:9000", "--spectate"}))
	spectate, err := watchCmd.Flags().GetBool("spectate")
	require.NoError(t, err)
	assert.True(t, spectate)
}

func TestGame_LayoutIsFixed(t *testing.T) {
	g := &Game{}
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, config.C.Width, w)
	assert.Equal(t, config.C.Height, h)
}
