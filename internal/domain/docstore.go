package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// ReadStatus records why a document load produced the value it did. Callers
// outside this package only ever see the collapsed result, tests can see the
// reason.
type ReadStatus int

const (
	ReadOK ReadStatus = iota
	ReadMissing
	ReadUnreadable
	ReadCorrupt
)

func (s ReadStatus) String() string {
	switch s {
	case ReadOK:
		return "ok"
	case ReadMissing:
		return "missing"
	case ReadUnreadable:
		return "unreadable"
	case ReadCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("ReadStatus(%d)", int(s))
	}
}

type StoreOption func(*storeOptions)

type storeOptions struct {
	log zerolog.Logger
	now func() time.Time
}

func WithLogger(log zerolog.Logger) StoreOption {
	return func(o *storeOptions) { o.log = log }
}

func withClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) { o.now = now }
}

func buildStoreOptions(opts []StoreOption) storeOptions {
	o := storeOptions{log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// jsonDocument is a whole-file JSON repository. Reads fold a missing or
// corrupt file into the empty value; writes go through WriteAtomic.
type jsonDocument[T any] struct {
	path  string
	empty func() T
	opts  storeOptions
}

func newJSONDocument[T any](path string, empty func() T, opts storeOptions) *jsonDocument[T] {
	return &jsonDocument[T]{path: path, empty: empty, opts: opts}
}

func (d *jsonDocument[T]) load() (T, ReadStatus, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return d.empty(), ReadMissing, nil
		}
		return d.empty(), ReadUnreadable, storageError("read", d.path, err)
	}

	value := d.empty()
	if err := json.Unmarshal(data, &value); err != nil {
		return d.empty(), ReadCorrupt, &Error{Kind: ErrParse, Op: "parse", Path: d.path, Err: err}
	}
	return value, ReadOK, nil
}

// read is load with the failure folded away and logged.
func (d *jsonDocument[T]) read() (T, ReadStatus) {
	value, status, err := d.load()
	if err != nil {
		d.opts.log.Warn().Err(err).Str("path", d.path).Stringer("status", status).Msg("treating document as empty")
	}
	return value, status
}

// update performs one read-modify-write cycle. mutate returning false skips
// the write. A document that exists but cannot be read is never replaced.
func (d *jsonDocument[T]) update(mutate func(*T) (bool, error)) error {
	value, status := d.read()
	if status == ReadUnreadable {
		return storageError("update", d.path, errors.New("existing document could not be read"))
	}
	changed, err := mutate(&value)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if status == ReadCorrupt {
		d.preserveCorrupt()
	}
	return d.save(value)
}

func (d *jsonDocument[T]) save(value T) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return storageError("write", d.path, err)
	}
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}
	if err := WriteAtomic(d.path, data, 0o600); err != nil {
		return storageError("write", d.path, err)
	}
	return nil
}

// preserveCorrupt moves an unparsable document aside before it is replaced.
func (d *jsonDocument[T]) preserveCorrupt() {
	aside := fmt.Sprintf("%s.corrupt-%d", d.path, d.opts.now().Unix())
	if err := os.Rename(d.path, aside); err != nil {
		d.opts.log.Warn().Err(err).Str("path", d.path).Msg("could not preserve corrupt document")
		return
	}
	d.opts.log.Warn().Str("path", d.path).Str("preserved_as", aside).Msg("corrupt document preserved before overwrite")
}
