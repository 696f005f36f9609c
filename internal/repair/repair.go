package repair

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Names of the semantically significant fields in a profile document.
// Everything else in the document passes through untouched.
const (
	downloadModeKey   = "download_mode"
	templateFolderKey = "template_folder"
)

// legacyDownloadMode is the download_mode value the engine rejects.
const legacyDownloadMode = "aria2c"

// datePlaceholder is the unsupported template placeholder. It is stripped
// most-specific form first so the surrounding bracket and space go with it.
const datePlaceholder = "{date:%Y}"

var placeholderForms = []string{
	" [" + datePlaceholder + "]",
	"[" + datePlaceholder + "]",
	datePlaceholder,
}

// Result describes what a repair pass did.
type Result struct {
	// Fixed reports whether the document was rewritten.
	Fixed bool

	// Applied lists human-readable descriptions of the fixes applied,
	// in the order they ran.
	Applied []string

	// BackupPath is the backup file written before mutation, if any.
	BackupPath string
}

// Repairer applies the known fixes to profile documents.
type Repairer struct {
	backupDir string
	backup    bool
	logger    *slog.Logger
}

// Option configures a Repairer.
type Option func(*Repairer)

// WithBackup enables copying the original file into backupDir before the
// first mutation. Backup failures are non-fatal.
func WithBackup(backupDir string) Option {
	return func(r *Repairer) {
		r.backup = true
		r.backupDir = backupDir
	}
}

// WithLogger sets the logger used for best-effort warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repairer) {
		r.logger = logger
	}
}

// NewRepairer creates a Repairer. Without options it neither backs up nor
// logs anywhere visible.
func NewRepairer(opts ...Option) *Repairer {
	r := &Repairer{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply inspects the document at path and rewrites it if either known
// defect is present. It never returns an error: any failure is logged and
// reported as "no fix applied".
func (r *Repairer) Apply(path string) Result {
	var result Result

	data, err := os.ReadFile(path) //nolint:gosec // path comes from profile resolution
	if err != nil {
		r.logger.Warn("could not read config", "path", path, "error", err)
		return result
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		r.logger.Warn("could not parse config", "path", path, "error", err)
		return result
	}

	if !needsFix(doc) {
		return result
	}

	// Snapshot the original before any mutation. Best effort: a failed
	// backup is logged and repair proceeds.
	if r.backup {
		backupPath, err := r.backupConfig(path)
		if err != nil {
			r.logger.Warn("could not backup config", "path", path, "error", err)
		} else {
			result.BackupPath = backupPath
			r.logger.Info("config backup created", "backup", filepath.Base(backupPath))
		}
	}

	if mode, ok := doc[downloadModeKey].(string); ok && mode == legacyDownloadMode {
		delete(doc, downloadModeKey)
		result.Applied = append(result.Applied, "removed aria2c mode")
	}

	if template, ok := doc[templateFolderKey].(string); ok && strings.Contains(template, datePlaceholder) {
		doc[templateFolderKey] = stripPlaceholder(template)
		result.Applied = append(result.Applied, "fixed date template")
	}

	fixed, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		r.logger.Warn("could not encode config", "path", path, "error", err)
		return Result{BackupPath: result.BackupPath}
	}
	fixed = append(fixed, '\n')

	if err := os.WriteFile(path, fixed, 0600); err != nil {
		r.logger.Warn("could not write config", "path", path, "error", err)
		return Result{BackupPath: result.BackupPath}
	}

	result.Fixed = true
	return result
}

// needsFix reports whether either defect is present.
func needsFix(doc map[string]any) bool {
	if mode, ok := doc[downloadModeKey].(string); ok && mode == legacyDownloadMode {
		return true
	}
	if template, ok := doc[templateFolderKey].(string); ok && strings.Contains(template, datePlaceholder) {
		return true
	}
	return false
}

// stripPlaceholder removes every form of the date placeholder, wrapped
// forms first so their brackets and leading space disappear with them.
func stripPlaceholder(template string) string {
	for _, form := range placeholderForms {
		template = strings.ReplaceAll(template, form, "")
	}
	return template
}

// backupConfig copies the document at path into the backup directory as
// <stem>_backup.json, creating the directory as needed. A repeated repair
// in the same run overwrites the same backup file, keeping the name
// deterministic.
func (r *Repairer) backupConfig(path string) (string, error) {
	if err := os.MkdirAll(r.backupDir, 0750); err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	backupPath := filepath.Join(r.backupDir, stem+"_backup.json")

	src, err := os.Open(path) //nolint:gosec // same path just read by Apply
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // path built from backup dir
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	// Preserve the original's timestamp on the snapshot so the backup
	// reflects when the config was last edited, not when it was repaired.
	if info, err := os.Stat(path); err == nil {
		_ = os.Chtimes(backupPath, info.ModTime(), info.ModTime())
	}

	return backupPath, nil
}
