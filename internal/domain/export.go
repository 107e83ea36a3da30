package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const exportTimeLayout = "01022006_150405"

// maxExportAttempts bounds the suffix search for a free export name.
const maxExportAttempts = 1000

type ExportOption func(*Exporter)

func WithExportLogger(log zerolog.Logger) ExportOption {
	return func(e *Exporter) { e.log = log }
}

func WithExportClock(now func() time.Time) ExportOption {
	return func(e *Exporter) { e.now = now }
}

func WithExportBaseName(base string) ExportOption {
	return func(e *Exporter) { e.base = base }
}

// Exporter writes plaintext snapshots of the vault. The output is
// deliberately unencrypted; removing it is up to the caller.
type Exporter struct {
	vault *VaultStore
	base  string
	now   func() time.Time
	log   zerolog.Logger
}

func NewExporter(vault *VaultStore, opts ...ExportOption) *Exporter {
	e := &Exporter{vault: vault, base: ExportBaseName, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UniqueExportPath derives <base>_<MMDDYYYY>_<HHMMSS>.txt inside dir.
func UniqueExportPath(dir, base string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.txt", base, at.Format(exportTimeLayout)))
}

// ExportAll writes every credential, decrypted, to a new file in dir and
// returns its path. An existing file is never overwritten.
func (e *Exporter) ExportAll(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", exportError("", validationError("export", "destination directory must not be empty"))
	}

	creds, err := e.vault.ListAll()
	if err != nil {
		return "", exportError(dir, err)
	}
	data, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return "", exportError(dir, err)
	}

	path, err := e.writeExclusive(dir, data)
	if err != nil {
		return "", exportError(dir, err)
	}
	e.log.Info().Str("path", path).Int("credentials", len(creds)).Msg("plaintext export written")
	return path, nil
}

func (e *Exporter) writeExclusive(dir string, data []byte) (string, error) {
	first := UniqueExportPath(dir, e.base, e.now())
	stem := strings.TrimSuffix(first, ".txt")

	for attempt := 1; attempt <= maxExportAttempts; attempt++ {
		path := first
		if attempt > 1 {
			path = fmt.Sprintf("%s_%d.txt", stem, attempt)
		}

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			return "", storageError("create", path, err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", storageError("write", path, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", storageError("write", path, err)
		}
		return path, nil
	}
	return "", storageError("create", first, errors.New("no free export file name"))
}

func exportError(path string, err error) error {
	return &Error{Kind: ErrExport, Op: "export", Path: path, Err: err}
}
