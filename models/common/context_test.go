package common_test

import (
	"testing"

	"github.com/op/go-logging"
	"github.com/roastproject/roast-env/models/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	settings := loadFromString(t, "RUST_LOG=error\n")
	context := common.NewContext("roast_test", settings)
	require.NotNil(t, context)

	assert.Same(t, settings, context.Settings)
	require.NotNil(t, context.Logger)
	assert.True(t, context.Logger.IsEnabledFor(logging.ERROR))
	assert.False(t, context.Logger.IsEnabledFor(logging.INFO))
}

func TestNewContextBadFilter(t *testing.T) {
	// An unparseable RUST_LOG falls back to the default level
	// instead of failing startup.
	settings := loadFromString(t, "RUST_LOG==debug\n")
	context := common.NewContext("roast_test", settings)
	require.NotNil(t, context.Logger)
	assert.True(t, context.Logger.IsEnabledFor(logging.INFO))
	assert.False(t, context.Logger.IsEnabledFor(logging.DEBUG))
}
