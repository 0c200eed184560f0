package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceState_CanTransition(t *testing.T) {
	tests := []struct {
		from     SourceState
		to       SourceState
		expected bool
	}{
		{StateIdle, StateChecking, true},
		{StateChecking, StateOffline, true},
		{StateChecking, StateLiveStarting, true},
		{StateChecking, StateIdle, true},
		{StateOffline, StateChecking, true},
		{StateLiveStarting, StateRecording, true},
		{StateLiveStarting, StateFailed, true},
		{StateLiveStarting, StateStopping, true},
		{StateRecording, StateStopping, true},
		{StateStopping, StateIdle, true},
		{StateStopping, StateFailed, true},
		{StateFailed, StateIdle, true},

		{StateIdle, StateRecording, false},
		{StateOffline, StateRecording, false},
		{StateChecking, StateRecording, false},
		{StateRecording, StateIdle, false},
		{StateRecording, StateLiveStarting, false},
		{StateFailed, StateChecking, false},
		{StateStopping, StateRecording, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransition(tt.to))
		})
	}
}

func TestSourceState_Valid(t *testing.T) {
	for _, st := range AllStates() {
		assert.True(t, st.Valid(), string(st))
	}
	assert.False(t, SourceState("live").Valid())
	assert.False(t, SourceState("").Valid())
}

func TestSourceState_HasSession(t *testing.T) {
	assert.True(t, StateLiveStarting.HasSession())
	assert.True(t, StateRecording.HasSession())
	assert.True(t, StateStopping.HasSession())
	assert.False(t, StateIdle.HasSession())
	assert.False(t, StateOffline.HasSession())
	assert.False(t, StateFailed.HasSession())
}

func TestCountStates(t *testing.T) {
	snapshot := map[string]SourceStatus{
		"a": {State: StateRecording},
		"b": {State: StateRecording},
		"c": {State: StateOffline},
	}

	counts := CountStates(snapshot)
	assert.Equal(t, 2, counts[StateRecording])
	assert.Equal(t, 1, counts[StateOffline])
	assert.Equal(t, 0, counts[StateFailed])
}
