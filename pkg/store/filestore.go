package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"github.com/gisdevelope/mapdb/pkg/codec"
)

// FileStore is the persistent store variant. Durability comes entirely
// from whole-snapshot generations around the in-memory engine: Commit
// writes the full record table to a fresh numbered data file, then
// creates a zero-length commit marker, then deletes the previous
// generation. The marker's existence is the atomicity proof; a data
// file without its marker is an aborted commit and is ignored on open.
//
// On-disk layout for a backing path P:
//
//	P        8-byte header only, written on first open
//	P.{N}.d  data snapshot for generation N
//	P.{N}.c  zero-length commit marker for generation N
type FileStore struct {
	*MemStore
	path string
	flk  *flock.Flock

	// version is the last committed generation, -1 before any commit.
	version int64
}

var _ Store = (*FileStore)(nil)

// OpenFileStore opens or creates the store backed by path. It takes an
// exclusive advisory lock on the backing path and fails immediately
// with ErrFileLocked if another process holds it; there is no waiting.
func OpenFileStore(path string, opts Options) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	flk := flock.New(path)
	locked, err := flk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("store: lock %s: %w", path, err)
	}
	if !locked {
		return nil, ErrFileLocked
	}

	f := &FileStore{
		MemStore: NewMemStore(opts),
		path:     path,
		flk:      flk,
		version:  -1,
	}
	if err := f.open(); err != nil {
		_ = flk.Unlock()
		return nil, err
	}
	return f, nil
}

// open writes or validates the backing-path header, then discovers and
// loads the latest committed generation.
func (f *FileStore) open() error {
	fh, err := os.OpenFile(f.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("store: open %s: %w", f.path, err)
	}
	st, err := fh.Stat()
	if err != nil {
		fh.Close()
		return fmt.Errorf("store: stat %s: %w", f.path, err)
	}
	if st.Size() == 0 {
		err = codec.WriteHeader(fh, codec.TypeRecordStore)
		if err == nil {
			err = fh.Sync()
		}
	} else {
		err = codec.ReadHeader(fh, codec.TypeRecordStore)
	}
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	version, err := f.latestCommitted()
	if err != nil {
		return err
	}
	if version < 0 {
		return nil
	}

	df, err := os.Open(f.dataPath(version))
	if err != nil {
		return fmt.Errorf("store: open generation %d: %w", version, err)
	}
	defer df.Close()
	if err := f.LoadSnapshot(df); err != nil {
		return err
	}
	f.version = version
	return nil
}

func (f *FileStore) dataPath(version int64) string {
	return fmt.Sprintf("%s.%d.d", f.path, version)
}

func (f *FileStore) markerPath(version int64) string {
	return fmt.Sprintf("%s.%d.c", f.path, version)
}

// latestCommitted scans the directory for the highest-numbered commit
// marker whose matching data file exists. No filesystem ordering is
// assumed; the trailing numeric suffix is parsed explicitly.
func (f *FileStore) latestCommitted() (int64, error) {
	dir := filepath.Dir(f.path)
	prefix := filepath.Base(f.path) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return -1, fmt.Errorf("store: scan %s: %w", dir, err)
	}

	best := int64(-1)
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".c") {
			continue
		}
		num := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".c")
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil || n < 0 {
			continue
		}
		if _, err := os.Stat(f.dataPath(n)); err != nil {
			// marker without data: not a committed generation
			continue
		}
		if n > best {
			best = n
		}
	}
	return best, nil
}

// Commit durably writes generation version+1: full snapshot first,
// marker second, previous generation deleted last. A crash before the
// marker exists leaves the previous generation authoritative.
func (f *FileStore) Commit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	next := f.version + 1
	df, err := os.Create(f.dataPath(next))
	if err != nil {
		return fmt.Errorf("store: create data file: %w", err)
	}
	bw := bufio.NewWriter(df)
	if err := f.writeSnapshotLocked(bw); err != nil {
		df.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		df.Close()
		return fmt.Errorf("store: flush data file: %w", err)
	}
	if err := df.Sync(); err != nil {
		df.Close()
		return fmt.Errorf("store: sync data file: %w", err)
	}
	if err := df.Close(); err != nil {
		return fmt.Errorf("store: close data file: %w", err)
	}

	// marker creation is the durability boundary
	mf, err := os.Create(f.markerPath(next))
	if err != nil {
		return fmt.Errorf("store: create commit marker: %w", err)
	}
	if err := mf.Sync(); err != nil {
		mf.Close()
		return fmt.Errorf("store: sync commit marker: %w", err)
	}
	if err := mf.Close(); err != nil {
		return fmt.Errorf("store: close commit marker: %w", err)
	}

	if f.version >= 0 {
		_ = os.Remove(f.markerPath(f.version))
		_ = os.Remove(f.dataPath(f.version))
	}
	f.version = next
	return nil
}

// Rollback discards uncommitted mutations. With no prior commit the
// store returns to empty; otherwise the last committed generation is
// reloaded.
func (f *FileStore) Rollback() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	if f.version < 0 {
		f.clearLocked()
		return nil
	}
	df, err := os.Open(f.dataPath(f.version))
	if err != nil {
		return fmt.Errorf("store: open generation %d: %w", f.version, err)
	}
	defer df.Close()
	return f.loadSnapshotLocked(df)
}

// Version returns the last committed generation, -1 before any commit.
func (f *FileStore) Version() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// Files lists the existing backing paths: the header file plus every
// generation file, sorted.
func (f *FileStore) Files() []string {
	var out []string
	if _, err := os.Stat(f.path); err == nil {
		out = append(out, f.path)
	}
	dir := filepath.Dir(f.path)
	prefix := filepath.Base(f.path) + "."
	entries, err := os.ReadDir(dir)
	if err != nil {
		return out
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// Stats reports diagnostic counters including the committed version.
func (f *FileStore) Stats() Stats {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Stats{
		Records:    len(f.tbl),
		FreeRecids: len(f.alloc.free),
		MaxRecid:   f.alloc.max,
		Version:    f.version,
	}
}

// Close verifies (when paranoid), releases the file lock, and in
// ephemeral mode deletes every backing file. Idempotent.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	if err := f.closeLocked(); err != nil {
		return err
	}
	if err := f.flk.Unlock(); err != nil {
		return fmt.Errorf("store: release file lock: %w", err)
	}
	if f.opts.DeleteFilesAfterClose {
		for _, p := range f.Files() {
			_ = os.Remove(p)
		}
	}
	return nil
}
