package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytmdl-ng/ytmdl/internal/config"
	"github.com/ytmdl-ng/ytmdl/internal/engine"
)

// externalTools are the PATH binaries the download flow depends on,
// paired with what breaks without them.
var externalTools = []struct {
	name string
	why  string
}{
	{"node", "runs the PO token server"},
	{"ffmpeg", "remuxes and tags downloaded audio"},
	{"aria2c", "optional accelerated downloads"},
	{"python3", "runs the download engine"},
}

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the installation for missing pieces",
		Long: `Check inspects the installation and reports what a download session
needs: external tools on PATH, the Python virtual environment, the
download engine, the PO token server build and its liveness, and the
available profiles.

Check never changes anything; it only reports.`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	out := cmd.OutOrStdout()
	problems := 0

	fmt.Fprintf(out, "Installation root: %s\n\n", a.layout.Root())

	fmt.Fprintln(out, "External tools:")
	for _, tool := range externalTools {
		if path, err := exec.LookPath(tool.name); err == nil {
			fmt.Fprintf(out, "  %s %-8s %s\n", okMark(), tool.name, path)
		} else {
			problems++
			fmt.Fprintf(out, "  %s %-8s not found on PATH (%s)\n", failMark(), tool.name, tool.why)
		}
	}

	fmt.Fprintln(out, "\nPython engine:")
	if venv := venvPython(a.layout); venv != "" {
		fmt.Fprintf(out, "  %s virtual environment: %s\n", okMark(), venv)
	} else {
		fmt.Fprintf(out, "  %s virtual environment missing (run: python -m venv env)\n", warnMark())
	}
	if engine.EngineImportable(ctx, a.layout, engine.QuietRunner()) {
		fmt.Fprintf(out, "  %s gytmdl importable\n", okMark())
	} else {
		problems++
		fmt.Fprintf(out, "  %s gytmdl not importable (run: pip install gytmdl)\n", failMark())
	}

	fmt.Fprintln(out, "\nPO token server:")
	if _, err := os.Stat(a.layout.ServerScript()); err == nil {
		fmt.Fprintf(out, "  %s build artifact: %s\n", okMark(), a.layout.ServerScript())
	} else {
		problems++
		fmt.Fprintf(out, "  %s not built (run: cd bgutil-pot-provider && npm install && npx tsc)\n", failMark())
	}
	reportServerStatus(ctx, out, a)

	fmt.Fprintln(out, "\nProfiles:")
	names, err := config.DiscoverProfiles(a.layout)
	switch {
	case err != nil:
		problems++
		fmt.Fprintf(out, "  %s cannot read %s: %v\n", failMark(), a.layout.ConfigDir(), err)
	case len(names) == 0:
		problems++
		fmt.Fprintf(out, "  %s no profiles under %s\n", failMark(), a.layout.ConfigDir())
	default:
		fmt.Fprintf(out, "  %s %d profile(s) available\n", okMark(), len(names))
	}

	// Check is a report, not a gate: missing pieces are printed but the
	// command still exits 0.
	if problems > 0 {
		fmt.Fprintf(out, "\n%d problem(s) found\n", problems)
	} else {
		fmt.Fprintln(out, "\nEverything looks good")
	}
	return nil
}

// reportServerStatus prints the live server state. A stopped server is
// not a problem; the download commands start it on demand.
func reportServerStatus(ctx context.Context, out io.Writer, a *app) {
	pid, found := a.prober.FindRunning(ctx)
	switch {
	case found && a.prober.Healthy(ctx):
		fmt.Fprintf(out, "  %s running and responding (pid %d)\n", okMark(), pid)
	case found:
		fmt.Fprintf(out, "  %s running but not responding (pid %d)\n", warnMark(), pid)
	default:
		fmt.Fprintf(out, "  %s not running (started on demand)\n", warnMark())
	}
}

// venvPython returns the first existing virtual environment interpreter,
// or empty when none exists.
func venvPython(layout *config.Layout) string {
	for _, candidate := range layout.VenvPythonCandidates() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Status markers for the check listing.
func okMark() string   { return color.GreenString("[OK]") }
func failMark() string { return color.RedString("[!!]") }
func warnMark() string { return color.YellowString("[--]") }
