package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// Options configures the SSH dashboard server
type Options struct {
	Addr               string
	AuthorizedKeysPath string // defaults to ~/.ssh/authorized_keys
	Controller         ui.Controller
	HostKeyDir         string
	Refresh            time.Duration
	Title              string
}

// Server serves the status dashboard over SSH
type Server struct {
	addr               string
	authorizedKeysPath string
	controller         ui.Controller
	refresh            time.Duration
	title              string
	wishServer         *ssh.Server
}

// NewServer creates the server and its host key if missing
func NewServer(opts Options) (*Server, error) {
	if opts.Controller == nil {
		return nil, fmt.Errorf("ssh server needs a controller")
	}

	s := &Server{
		addr:               opts.Addr,
		authorizedKeysPath: opts.AuthorizedKeysPath,
		controller:         opts.Controller,
		refresh:            opts.Refresh,
		title:              opts.Title,
	}
	if s.authorizedKeysPath == "" {
		s.authorizedKeysPath = DefaultAuthorizedKeysPath()
	}

	if err := os.MkdirAll(opts.HostKeyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(opts.Addr),
		wish.WithHostKeyPath(filepath.Join(opts.HostKeyDir, "id_ed25519")),
		wish.WithPublicKeyAuth(s.publicKeyHandler),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Info("Starting SSH server", "address", s.addr)
		errCh <- s.wishServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.wishServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}
