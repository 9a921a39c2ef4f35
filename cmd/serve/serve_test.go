package serve_test

import (
	"testing"

	"fjacquet/fintrack/cmd/serve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.Contains(t, serve.Cmd.Long, "GET /api/transactions")
	assert.NotNil(t, serve.Cmd.RunE)

	addr := serve.Cmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "a", addr.Shorthand)
	assert.Equal(t, "", addr.DefValue)
}
