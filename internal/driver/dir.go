package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reckon/internal/observ"
	"reckon/internal/project"
	"reckon/internal/source"
	"reckon/internal/trace"
)

// DirOptions configures RunDir.
type DirOptions struct {
	Options
	// Jobs limits concurrent files; <= 0 means GOMAXPROCS.
	Jobs int
	// Sink receives progress events from the workers. May be nil.
	Sink ProgressSink
	// Cache, when set, short-circuits files whose content was run before.
	Cache *DiskCache
	// Version salts cache keys so a new binary never reads old results.
	Version string
}

// DirResult содержит результат запуска одного файла
type DirResult struct {
	Path string // относительный путь, как в событиях прогресса
	*RunResult
	// LoadErr is set when the file could not be read; RunResult is nil then.
	LoadErr error
	Cached  bool
}

// Failed reports whether this file should make the whole run fail.
func (r DirResult) Failed() bool {
	return r.LoadErr != nil || r.RunResult == nil || r.RunResult.Failed()
}

// ListSources возвращает отсортированный список всех *.rk файлов в директории
func ListSources(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// RunDir runs every source under dir independently. Each file gets its own
// Bag, arena and evaluator; the FileSet is filled before any worker starts
// and only read afterwards. Cancellation is checked between files.
// Results come back in ListSources order.
func RunDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []DirResult, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	names := make([]string, len(files))
	for i, path := range files {
		names[i] = displayName(path, dir)
		emit(opts.Sink, Event{File: names[i], Status: StatusQueued})
	}

	// Предзагрузка: FileSet не потокобезопасен на запись
	loaded := make([]*source.File, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		loaded[i] = fileSet.Get(id)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErrors[i] != nil {
				results[i] = DirResult{Path: names[i], LoadErr: loadErrors[i]}
				emit(opts.Sink, Event{File: names[i], Status: StatusError, Err: loadErrors[i]})
				return nil
			}
			res, err := runOne(gctx, fileSet, loaded[i], names[i], opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func runOne(ctx context.Context, fileSet *source.FileSet, file *source.File, name string, opts DirOptions) (DirResult, error) {
	start := time.Now()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.ParentSpan(ctx)).WithExtra("path", name)
	ctx = trace.WithSpan(ctx, span)

	// свой таймер на файл, потом сливаем в общий
	fileOpts := opts.Options
	if opts.Timer != nil {
		fileOpts.Timer = observ.NewTimer()
		defer opts.Timer.Merge(fileOpts.Timer)
	}

	out := DirResult{Path: name}
	key := CacheKey(file, opts.Version, opts.MaxDiagnostics)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache.error", span.ID(), err.Error())
		}
		if hit && payload.ContentHash == project.Digest(file.Hash) {
			out.RunResult = payloadToRun(&payload, fileSet, file, fileOpts)
			out.Cached = true
			emit(opts.Sink, Event{File: name, Status: StatusCached, Elapsed: time.Since(start)})
			span.WithExtra("cached", "true").End("")
			return out, nil
		}
	}

	emit(opts.Sink, Event{File: name, Stage: StageParse, Status: StatusWorking})
	pr, err := parseFile(ctx, fileSet, file, fileOpts)
	if err != nil {
		span.Fail(err)
		return out, err
	}
	if pr.Clean() {
		emit(opts.Sink, Event{File: name, Stage: StageEval, Status: StatusWorking})
	}
	rr, err := evaluate(ctx, pr, fileOpts)
	if err != nil {
		span.Fail(err)
		return out, err
	}
	out.RunResult = rr

	if payload, ok := runToPayload(rr); ok && opts.Cache != nil {
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache.error", span.ID(), err.Error())
		}
	}

	evt := Event{File: name, Stage: StageEval, Status: StatusDone, Elapsed: time.Since(start)}
	if rr.Failed() {
		evt.Status = StatusError
		if rr.Err != nil {
			evt.Err = rr.Err
		}
	}
	emit(opts.Sink, evt)
	span.End(string(evt.Status))
	return out, nil
}
