package testing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_Responses(t *testing.T) {
	m := NewMockClient("db01")
	m.SetCommandResponse("uptime", CommandResponse{Stdout: []byte("up 3 days\n")})
	m.SetPatternResponse(`^LC_ALL=C sar `, CommandResponse{Stdout: []byte("sar output\n")})

	stdout, _, code, err := m.ExecContext(context.Background(), "uptime")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "up 3 days\n", string(stdout))

	stdout, _, _, err = m.ExecContext(context.Background(), "LC_ALL=C sar -u")
	require.NoError(t, err)
	assert.Equal(t, "sar output\n", string(stdout))

	_, stderr, code, err := m.ExecContext(context.Background(), "iostat")
	require.NoError(t, err)
	assert.Equal(t, 127, code)
	assert.Contains(t, string(stderr), "command not found")

	assert.Equal(t, []string{"uptime", "LC_ALL=C sar -u", "iostat"}, m.Calls())
	assert.Equal(t, "db01", m.GetHost())
}

func TestMockClient_Closed(t *testing.T) {
	m := NewMockClient("db01")
	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())

	_, _, code, err := m.ExecContext(context.Background(), "uptime")
	assert.Error(t, err)
	assert.Equal(t, -1, code)
}

func TestMockClient_Cancelled(t *testing.T) {
	m := NewMockClient("db01")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := m.ExecContext(ctx, "uptime")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Calls())
}
