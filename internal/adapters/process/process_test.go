//go:build !windows

package process

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAlive(t *testing.T) {
	assert.True(t, IsAlive(os.Getpid()))
	assert.False(t, IsAlive(0))
	assert.False(t, IsAlive(-1))
}

func TestKillProcessGroup(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	Isolate(cmd)
	require.NoError(t, cmd.Start())

	pid := cmd.Process.Pid
	assert.True(t, IsAlive(pid))

	require.NoError(t, Kill(cmd.Process))
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("process survived kill")
	}
	assert.False(t, IsAlive(pid))
}

func TestInterrupt(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	Isolate(cmd)
	require.NoError(t, cmd.Start())

	require.NoError(t, Interrupt(cmd.Process))

	err := cmd.Wait()
	require.Error(t, err)
	assert.Equal(t, -1, cmd.ProcessState.ExitCode())
}
