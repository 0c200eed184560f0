package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexlevi/webcorder/internal/domain"
)

type staticController struct{}

func (staticController) ResumeRecording(string) error { return nil }
func (staticController) StatusSnapshot() map[string]domain.SourceStatus {
	return map[string]domain.SourceStatus{}
}
func (staticController) StopRecording(string) error { return nil }
func (staticController) ToggleAutorecord(context.Context, string) (bool, error) {
	return false, nil
}

func TestNewServer_RequiresController(t *testing.T) {
	_, err := NewServer(Options{Addr: "127.0.0.1:0", HostKeyDir: t.TempDir()})
	assert.Error(t, err)
}

func TestServer_StartAndShutdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ssh")
	srv, err := NewServer(Options{
		Addr:               "127.0.0.1:0",
		AuthorizedKeysPath: filepath.Join(dir, "authorized_keys"),
		Controller:         staticController{},
		HostKeyDir:         dir,
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "id_ed25519"))
	assert.NoError(t, err, "host key is generated")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
