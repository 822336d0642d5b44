package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-column-raytracer/pkg/core"
	"github.com/df07/go-column-raytracer/pkg/framebuffer"
)

// DispatchConfig contains the parameters of one render job
type DispatchConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Samples passed to the sampler for every pixel
	NumWorkers      int // Number of concurrent column workers, never auto-detected
}

// DefaultDispatchConfig returns the defaults used by the command line driver
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Width:           600,
		Height:          600,
		SamplesPerPixel: 1,
		NumWorkers:      1,
	}
}

// Validate reports the first parameter that makes the job impossible
func (c DispatchConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigurationError{Field: "width", Value: c.Width, Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigurationError{Field: "height", Value: c.Height, Reason: "must be positive"}
	case c.SamplesPerPixel < 1:
		return &ConfigurationError{Field: "sample count", Value: c.SamplesPerPixel, Reason: "must be at least 1"}
	case c.NumWorkers < 1:
		return &ConfigurationError{Field: "worker count", Value: c.NumWorkers, Reason: "must be at least 1"}
	}
	return nil
}

// ScenePreparer is implemented by samplers that precompute per-scene state.
// The dispatcher calls Prepare once per render, before timing starts, and
// samples every pixel with the returned sampler.
type ScenePreparer interface {
	Prepare(scene core.Scene) core.PixelSampler
}

// Dispatcher renders an image by splitting its columns among a fixed batch
// of goroutines. Each render forks one goroutine per non-empty column range,
// joins them, then renders the leftover columns on the calling goroutine.
//
// A Dispatcher may be reused for several renders but not concurrently.
type Dispatcher struct {
	scene   core.Scene
	sampler core.PixelSampler
	config  DispatchConfig
	logger  core.Logger
	state   State
}

// NewDispatcher creates a dispatcher. A nil logger discards output.
func NewDispatcher(scene core.Scene, sampler core.PixelSampler, config DispatchConfig, logger core.Logger) *Dispatcher {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Dispatcher{
		scene:   scene,
		sampler: sampler,
		config:  config,
		logger:  logger,
		state:   StateConfigured,
	}
}

// State returns the lifecycle stage reached by the most recent render
func (d *Dispatcher) State() State { return d.state }

func (d *Dispatcher) validate() error {
	if err := d.config.Validate(); err != nil {
		return err
	}
	if d.scene == nil {
		return &ConfigurationError{Field: "scene", Value: nil, Reason: "is required"}
	}
	if d.sampler == nil {
		return &ConfigurationError{Field: "sampler", Value: nil, Reason: "is required"}
	}
	return nil
}

// Render samples every pixel exactly once and returns the finished grid.
// The elapsed time in the stats covers partitioning, the concurrent
// workers, the join and the leftover columns; it excludes grid allocation,
// sampler preparation and anything the caller does with the grid afterwards.
//
// On failure no grid is returned: a render either completes or is reported
// failed. A sampling error is returned as *SamplingError, invalid parameters
// as *ConfigurationError, and cancellation wraps ctx.Err().
func (d *Dispatcher) Render(ctx context.Context) (*framebuffer.Grid, RenderStats, error) {
	d.state = StateConfigured
	if err := d.validate(); err != nil {
		return d.fail(err)
	}

	grid, err := framebuffer.NewGrid(d.config.Width, d.config.Height)
	if err != nil {
		return d.fail(&ConfigurationError{Field: "resolution", Value: fmt.Sprintf("%dx%d", d.config.Width, d.config.Height), Reason: err.Error()})
	}

	sampler := d.sampler
	if preparer, ok := sampler.(ScenePreparer); ok {
		sampler = preparer.Prepare(d.scene)
	}

	startTime := time.Now()

	plan, err := Partition(d.config.Width, d.config.NumWorkers)
	if err != nil {
		return d.fail(err)
	}
	if err := plan.Verify(); err != nil {
		return d.fail(fmt.Errorf("column partition: %w", err))
	}
	d.state = StatePartitioned

	workerRanges := plan.NonEmptyRanges()
	d.logger.Printf("Dispatching %d pixels to %d workers (%d columns each, %d leftover columns)...\n",
		d.config.Width*d.config.Height, len(workerRanges), plan.Chunk, plan.Leftover.Width())

	group, groupCtx := errgroup.WithContext(ctx)
	d.state = StateDispatched
	for _, cols := range workerRanges {
		group.Go(func() error {
			return d.renderColumns(groupCtx, sampler, grid, cols)
		})
	}
	if err := group.Wait(); err != nil {
		return d.fail(d.classify(ctx, err))
	}
	d.state = StateJoined

	// The leftover is at most NumWorkers-1 columns wide unless the workers
	// outnumber the columns; render it here instead of spawning another task.
	if err := d.renderColumns(ctx, sampler, grid, plan.Leftover); err != nil {
		return d.fail(d.classify(ctx, err))
	}

	elapsed := time.Since(startTime)
	d.state = StateCompleted

	stats := RenderStats{
		TotalPixels:     d.config.Width * d.config.Height,
		SamplesPerPixel: d.config.SamplesPerPixel,
		NumWorkers:      d.config.NumWorkers,
		SpawnedWorkers:  len(workerRanges),
		ChunkWidth:      plan.Chunk,
		LeftoverColumns: plan.Leftover.Width(),
		Elapsed:         elapsed,
	}
	d.logger.Printf("Render completed in %v (%.0f pixels/s)\n", elapsed, stats.PixelsPerSecond())

	return grid, stats, nil
}

func (d *Dispatcher) fail(err error) (*framebuffer.Grid, RenderStats, error) {
	d.state = StateFailed
	d.logger.Printf("Render failed: %v\n", err)
	return nil, RenderStats{}, err
}

// classify marks context errors caused by the caller as cancellation;
// everything else, including *SamplingError, is passed through.
func (d *Dispatcher) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return fmt.Errorf("render cancelled: %w", err)
	}
	return err
}
