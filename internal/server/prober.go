package server

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Server process identity: a node runtime whose arguments reference the
// PO token server entry point.
const (
	serverRuntime        = "node"
	serverRuntimeWindows = "node.exe"
	serverEntryPoint     = "main.js"
)

// Prober locates the PO token server process and checks its liveness.
// The two checks are independent: FindRunning inspects the process table,
// Healthy talks to the liveness endpoint.
type Prober struct {
	lister  Lister
	client  *http.Client
	pingURL string
}

// NewProber creates a Prober that probes pingURL with the given timeout.
// A nil lister defaults to the system process table.
func NewProber(lister Lister, pingURL string, timeout time.Duration) *Prober {
	if lister == nil {
		lister = SystemLister{}
	}
	return &Prober{
		lister:  lister,
		client:  &http.Client{Timeout: timeout},
		pingURL: pingURL,
	}
}

// FindRunning scans live processes for the PO token server and returns
// the first match's PID. The second return is false when no server
// process exists or the scan itself failed; a failed scan is treated as
// "not found" because the supervisor's spawn path handles both the same
// way.
func (p *Prober) FindRunning(ctx context.Context) (int32, bool) {
	procs, err := p.lister.Processes(ctx)
	if err != nil {
		return 0, false
	}

	for _, proc := range procs {
		if proc.Name != serverRuntime && proc.Name != serverRuntimeWindows {
			continue
		}
		for _, arg := range proc.Cmdline {
			if strings.Contains(arg, serverEntryPoint) {
				return proc.PID, true
			}
		}
	}
	return 0, false
}

// Healthy issues one liveness request. Any transport error, timeout, or
// non-200 status is "unhealthy"; there is no retry at this layer because
// absence of a timely answer is conclusive for a single probe.
func (p *Prober) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.pingURL, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
