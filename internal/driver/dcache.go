package driver

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"reckon/internal/diag"
	"reckon/internal/eval"
	"reckon/internal/project"
	"reckon/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты запусков на диске, по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what a run leaves behind, without the AST. Spans are
// stored as offsets and rebound to the file on load.
type DiskPayload struct {
	Schema uint16

	Path        string
	ContentHash project.Digest

	Diagnostics []CachedDiagnostic

	Evaluated bool
	Value     int64
	HasValue  bool
	Bindings  map[string]int64
	EvalError *CachedEvalError
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type CachedEvalError struct {
	Code    int
	Message string
	Start   uint32
	End     uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as is.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// CacheKey identifies a run: the file content, the tool version and the
// diagnostics cap (it decides which diagnostics are kept).
func CacheKey(file *source.File, version string, maxDiagnostics int) project.Digest {
	var limit [8]byte
	binary.LittleEndian.PutUint64(limit[:], uint64(max(maxDiagnostics, 0)))
	return project.Combine(project.Digest(file.Hash), []byte(version), limit[:])
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "runs", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. A payload
// written by another schema version counts as a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, потом удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// runToPayload captures r for the cache. Runs whose Bag overflowed are not
// cacheable: the dropped count cannot be replayed.
func runToPayload(r *RunResult) (*DiskPayload, bool) {
	if r == nil || r.Bag.Dropped() > 0 {
		return nil, false
	}
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        r.File.Path,
		ContentHash: project.Digest(r.File.Hash),
		Evaluated:   r.Evaluated,
		Value:       r.Value.Value,
		HasValue:    r.Value.HasValue,
		Bindings:    r.Value.Bindings,
	}
	for _, d := range r.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	if r.Err != nil {
		payload.EvalError = &CachedEvalError{
			Code:    int(r.Err.Code),
			Message: r.Err.Message,
			Start:   r.Err.Span.Start,
			End:     r.Err.Span.End,
		}
	}
	return payload, true
}

// payloadToRun rebuilds a RunResult for file. The AST is not restored.
func payloadToRun(payload *DiskPayload, fs *source.FileSet, file *source.File, opts Options) *RunResult {
	span := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}

	bag := opts.newBag()
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), span(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(span(n.Start, n.End), n.Msg)
		}
		bag.Add(d)
	}

	out := &RunResult{
		ParseResult: &ParseResult{
			FileSet: fs,
			File:    file,
			Bag:     bag,
		},
		Evaluated: payload.Evaluated,
		Value: eval.Result{
			Value:    payload.Value,
			HasValue: payload.HasValue,
			Bindings: payload.Bindings,
		},
	}
	if ce := payload.EvalError; ce != nil {
		out.Err = &eval.EvalError{
			Code:    eval.ErrorCode(ce.Code),
			Message: ce.Message,
			Span:    span(ce.Start, ce.End),
		}
	}
	return out
}
