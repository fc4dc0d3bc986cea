package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// SSHServerConfig configures remote play.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // generated under ~/.platformer when empty
	DBPath      string        // runs database shared by every player
	IdleTimeout time.Duration // idle connections are dropped after this
	MaxSessions int           // concurrent players; 0 means no limit

	// Session is the template each connection starts from. The screen
	// size is taken from the client's PTY.
	Session SessionConfig
}

// DefaultSSHServerConfig returns the settings used by "platformer serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.platformer/runs.db",
		IdleTimeout: 30 * time.Minute,
		Session:     SessionConfig{Runtime: core.DefaultConfig()},
	}
}

// SSHServer serves one SessionModel per SSH connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer opens the runs database and prepares the wish server.
// A database that cannot be opened only disables score saving.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	srv := &SSHServer{
		config: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "platformer-ssh",
		}),
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		srv.logger.Warn("runs will not be saved", "db", cfg.DBPath, "error", err)
	}
	srv.store = store

	keyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	// Middlewares run last to first: log, admit, then the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.admitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("ssh: create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKeyPath returns path, or ~/.platformer/host_key when path is
// empty, and makes sure the key's directory exists.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: home directory: %w", err)
		}
		path = filepath.Join(home, ".platformer", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return path, nil
}

// admit reserves a player slot. It fails when MaxSessions are in use.
func (s *SSHServer) admit() bool {
	n := s.active.Add(1)
	if s.config.MaxSessions > 0 && int(n) > s.config.MaxSessions {
		s.active.Add(-1)
		return false
	}
	return true
}

func (s *SSHServer) release() {
	s.active.Add(-1)
}

// Sessions returns the number of players connected right now.
func (s *SSHServer) Sessions() int {
	return int(s.active.Load())
}

func (s *SSHServer) admitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if !s.admit() {
			s.logger.Warn("server full, rejecting", "user", sess.User(), "max", s.config.MaxSessions)
			fmt.Fprintln(sess.Stderr(), "All dog houses are taken. Try again in a bit.")
			_ = sess.Exit(1)
			return
		}
		defer s.release()
		next(sess)
	}
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY, use ssh -t", "user", sess.User())
		return nil, nil
	}

	cfg := s.config.Session
	cfg.Runtime.ScreenW = pty.Window.Width
	cfg.Runtime.ScreenH = pty.Window.Height

	model, err := NewSessionModel(s.store, cfg)
	if err != nil {
		s.logger.Error("cannot start session", "user", sess.User(), "error", err)
		return nil, nil
	}
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("player joined", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("player left",
			"user", sess.User(),
			"played", time.Since(start).Round(time.Second),
			"online", s.Sessions(),
		)
	}
}

// ListenAndServe serves until SIGINT or SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()
	s.logger.Info("listening", "address", s.config.Address, "max_sessions", s.config.MaxSessions)

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: serve: %w", err)
	case <-sig:
	}

	s.logger.Info("shutting down", "online", s.Sessions())
	return s.Shutdown()
}

// Shutdown stops accepting players and waits up to 10s for sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}
