package server

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo is the slice of process state the prober needs: identity,
// executable name, and invocation arguments.
type ProcessInfo struct {
	PID     int32
	Name    string
	Cmdline []string
}

// Lister enumerates live processes. Implementations skip entries they
// cannot read (exited mid-scan, permission denied) rather than failing
// the whole scan.
type Lister interface {
	Processes(ctx context.Context) ([]ProcessInfo, error)
}

// SystemLister is the gopsutil-backed Lister used in production.
type SystemLister struct{}

// Processes returns the readable live processes. Per-entry read errors
// drop that entry only.
func (SystemLister) Processes(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		cmdline, err := p.CmdlineSliceWithContext(ctx)
		if err != nil {
			continue
		}
		infos = append(infos, ProcessInfo{PID: p.Pid, Name: name, Cmdline: cmdline})
	}
	return infos, nil
}

// terminateProcess asks the process with the given PID to terminate
// (SIGTERM on Unix, TerminateProcess on Windows).
func terminateProcess(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.TerminateWithContext(ctx)
}
