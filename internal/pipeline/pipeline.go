package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"sync"

	"github.com/samber/lo"

	"github.com/futurist-future/image-converter/internal/encoder"
	"github.com/futurist-future/image-converter/internal/logging"
	"github.com/futurist-future/image-converter/internal/manifest"
	"github.com/futurist-future/image-converter/internal/profile"
	"github.com/futurist-future/image-converter/internal/service"
	"github.com/futurist-future/image-converter/internal/transform"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir     string
	OutputDir    string
	Profile      profile.Profile
	Workers      int
	Verbose      bool
	PreviewWidth int // 0 keeps the bitmap's width
	Quality      int // lossy preview quality
	Logger       *slog.Logger
	Progress     io.Writer // verbose lines; defaults to stderr
}

// Pipeline orchestrates batch conversion.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	preview  encoder.Encoder
	log      *slog.Logger
}

// New creates a configured pipeline. An unknown export format in the
// profile is an error.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Quality <= 0 {
		cfg.Quality = encoder.DefaultQuality
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Progress == nil {
		cfg.Progress = os.Stderr
	}
	p := &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		log:      cfg.Logger,
	}
	if cfg.Profile.Export != "" {
		enc, err := p.registry.Resolve(cfg.Profile.Export)
		if err != nil {
			return nil, err
		}
		p.preview = enc
	}
	return p, nil
}

func (p *Pipeline) progress(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(p.cfg.Progress, "[imgconv] "+format+"\n", args...)
	}
}

func (p *Pipeline) warn(ctx context.Context, msg string, args ...any) {
	p.log.WarnContext(ctx, msg, args...)
}

// Run executes the full build pipeline and returns the manifest. Failed
// sources are logged and counted; Run itself fails only when every source
// fails or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	ops := p.cfg.Profile.Ops()
	if len(ops) == 0 {
		return nil, fmt.Errorf("profile %q has no filters", p.cfg.Profile.Name)
	}
	filterNames := lo.Map(ops, func(op transform.Op, _ int) string { return op.String() })

	m := manifest.New(p.cfg.Profile.Name, filterNames)
	ctx = logging.AppendCtx(ctx, slog.String("run_id", m.RunID))

	if p.preview != nil {
		p.progress("%s", p.registry.String())
	}

	// Step 1: Scan for bitmaps.
	sources, err := ScanBitmaps(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no bitmaps found in %s", p.cfg.InputDir)
	}
	p.progress("found %d bitmaps", len(sources))
	p.log.InfoContext(ctx, "build started", "sources", len(sources), "filters", filterNames, "workers", p.cfg.Workers)

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// Step 2: Process bitmaps in parallel.
	results := make([]processResult, len(sources))
	collisions := outputCollisions(sources, ops[0])
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		if other, ok := collisions[i]; ok {
			results[i] = processResult{key: src.Key, err: fmt.Errorf("%s: output names collide with %s", src.RelPath, other)}
			continue
		}
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			sctx := logging.AppendCtx(ctx, slog.String("source", s.RelPath))
			p.progress("processing: %s", s.RelPath)
			p.log.DebugContext(sctx, "processing")

			results[idx] = p.processSource(sctx, s, ops)

			if results[idx].err == nil {
				p.progress("done: %s (%d outputs)", s.RelPath, len(results[idx].source.Outputs))
			}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Collect results into manifest.
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Sources[r.key] = r.source
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			p.log.ErrorContext(ctx, "source failed", "err", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d bitmaps failed to process: %w", len(errs), errs[0])
		}
		p.warn(ctx, "partial build", "failed", len(errs), "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:    p.cfg.Workers,
		BlurRadius: p.cfg.Profile.Radius,
		Export:     p.cfg.Profile.Export,
	}
	m.Stats.Failed = len(errs)
	m.ComputeStats()
	p.log.InfoContext(ctx, "build finished", "sources", m.Stats.TotalSources, "outputs", m.Stats.TotalOutputs, "failed", m.Stats.Failed)
	return m, nil
}

// outputCollisions maps the index of every source whose output names were
// already claimed by an earlier source to that source's path. Names differ
// only by op suffix, so checking one op is enough.
func outputCollisions(sources []Source, op transform.Op) map[int]string {
	seen := make(map[string]string, len(sources))
	out := make(map[int]string)
	for i, s := range sources {
		name := path.Join(path.Dir(s.Key), service.OutputName(s.RelPath, op))
		if first, ok := seen[name]; ok {
			out[i] = first
			continue
		}
		seen[name] = s.RelPath
	}
	return out
}
