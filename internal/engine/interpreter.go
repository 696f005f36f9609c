package engine

import (
	"context"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ytmdl-ng/ytmdl/internal/config"
)

// engineModule is the Python module the downloads run through.
const engineModule = "gytmdl"

// pathInterpreters are the PATH names tried when no virtual environment
// exists, in preference order.
var pathInterpreters = []string{"python3", "python"}

// ResolveInterpreter picks the Python interpreter for engine invocations:
// the installation's virtual environment when present, otherwise a PATH
// interpreter that can already import the engine (the container case).
// probe is used for the import check and should discard output.
func ResolveInterpreter(ctx context.Context, layout *config.Layout, probe Runner, logger *slog.Logger) (string, error) {
	for _, candidate := range layout.VenvPythonCandidates() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	for _, name := range pathInterpreters {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		code, err := probe.Run(ctx, Command{Path: path, Args: []string{"-c", "import " + engineModule}})
		if err == nil && code == 0 {
			logger.Info("using system Python (container mode)", "interpreter", path)
			return path, nil
		}
	}

	return "", ErrNoInterpreter
}

// EngineImportable reports whether any usable interpreter can import the
// download engine. Used by the check command.
func EngineImportable(ctx context.Context, layout *config.Layout, probe Runner) bool {
	python, err := ResolveInterpreter(ctx, layout, probe, slog.New(slog.DiscardHandler))
	if err != nil {
		return false
	}
	code, err := probe.Run(ctx, Command{Path: python, Args: []string{"-c", "import " + engineModule}})
	return err == nil && code == 0
}
