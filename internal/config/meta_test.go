package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsExample(t *testing.T) {
	fields := GetSettingsExample()
	require.NotEmpty(t, fields)

	byName := make(map[string]any, len(fields))
	for i, f := range fields {
		if i > 0 {
			assert.Less(t, fields[i-1].Name, f.Name, "fields are sorted")
		}
		byName[f.Name] = f.Example
	}

	assert.Equal(t, DefaultContainer, byName["container"])
	assert.Equal(t, 30, byName["sync_interval_seconds"])
	assert.Equal(t, DefaultResolverCommand, byName["resolver_command"])
	assert.Equal(t, true, byName["debug"])
	assert.Contains(t, byName, "poll_interval_seconds")
}
