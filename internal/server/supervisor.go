package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/ytmdl-ng/ytmdl/internal/config"
	internallog "github.com/ytmdl-ng/ytmdl/internal/log"
)

// ErrServerNotBuilt wraps the missing-artifact failure with its
// remediation. Declared as a function because the message carries the
// resolved path.
func errServerNotBuilt(path string) error {
	return fmt.Errorf("server file not found at %s (run: cd bgutil-pot-provider && npm install && npx tsc)", path)
}

// SpawnFunc starts a command detached from the caller's lifecycle, with
// stdout and stderr redirected to logPath (or discarded when empty), and
// returns the new PID. Platform backends live in spawn_unix.go and
// spawn_windows.go.
type SpawnFunc func(name string, args []string, dir, logPath string) (int, error)

// Supervisor ensures exactly one healthy PO token server instance.
type Supervisor struct {
	layout *config.Layout
	prober *Prober
	logger *slog.Logger

	// Injection points for tests. Defaults talk to the real system.
	spawn         SpawnFunc
	terminate     func(ctx context.Context, pid int32) error
	startWait     time.Duration
	terminateWait time.Duration
}

// SupervisorOption configures a Supervisor.
type SupervisorOption func(*Supervisor)

// WithSpawn replaces the detached-spawn backend.
func WithSpawn(spawn SpawnFunc) SupervisorOption {
	return func(s *Supervisor) {
		s.spawn = spawn
	}
}

// WithTerminate replaces the process-termination backend.
func WithTerminate(terminate func(ctx context.Context, pid int32) error) SupervisorOption {
	return func(s *Supervisor) {
		s.terminate = terminate
	}
}

// WithStartWait sets the post-spawn wait before the health re-probe.
func WithStartWait(d time.Duration) SupervisorOption {
	return func(s *Supervisor) {
		s.startWait = d
	}
}

// WithTerminateWait sets the pause after terminating a stale instance.
func WithTerminateWait(d time.Duration) SupervisorOption {
	return func(s *Supervisor) {
		s.terminateWait = d
	}
}

// NewSupervisor creates a Supervisor for the installation at layout.
func NewSupervisor(layout *config.Layout, prober *Prober, logger *slog.Logger, opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		layout:        layout,
		prober:        prober,
		logger:        logger,
		spawn:         spawnDetached,
		terminate:     terminateProcess,
		startWait:     config.DefaultStartWait,
		terminateWait: config.DefaultTerminateWait,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureRunning makes sure a healthy server instance exists.
//
// A found-and-healthy instance is the idempotent fast path. A found-but-
// unhealthy instance is terminated and replaced. A spawned instance that
// has not turned healthy after the start wait is still success, with a
// warning: slow startup is not a failure at this layer. The only hard
// failures are a missing build artifact and a spawn that did not start.
func (s *Supervisor) EnsureRunning(ctx context.Context) error {
	if pid, found := s.prober.FindRunning(ctx); found {
		if s.prober.Healthy(ctx) {
			s.logger.Info("PO token server is already running", "pid", pid)
			return nil
		}

		s.logger.Warn("found node process but server not responding, restarting...", "pid", pid)
		if err := s.terminate(ctx, pid); err != nil {
			s.logger.Debug("terminate failed", "pid", pid, "error", err)
		}
		sleepCtx(ctx, s.terminateWait)
	}

	script := s.layout.ServerScript()
	if _, err := os.Stat(script); err != nil {
		return errServerNotBuilt(script)
	}

	s.logger.Info("starting PO token server...")

	pid, err := s.spawn(serverRuntime, []string{script}, s.layout.Root(), serverLogPath())
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	sleepCtx(ctx, s.startWait)

	if s.prober.Healthy(ctx) {
		internallog.Success(s.logger, "PO token server started successfully", "pid", pid)
	} else {
		s.logger.Warn("server started but not responding yet, may need a moment...", "pid", pid)
	}
	return nil
}

// serverLogPath returns the log file the detached server writes to,
// under the XDG state directory. Empty on failure, which makes the spawn
// backend discard the output instead.
func serverLogPath() string {
	path, err := xdg.StateFile(filepath.Join(config.AppName, "server.log"))
	if err != nil {
		return ""
	}
	return path
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
