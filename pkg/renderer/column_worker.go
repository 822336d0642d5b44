package renderer

import (
	"context"
	"fmt"

	"github.com/df07/go-column-raytracer/pkg/core"
	"github.com/df07/go-column-raytracer/pkg/framebuffer"
)

// renderColumns samples every pixel of the given column range and stores it
// in the grid. It serves both the spawned workers and the leftover pass.
//
// Ranges handed out by Partition never overlap, so concurrent calls write
// disjoint pixels and the grid needs no lock.
func (d *Dispatcher) renderColumns(ctx context.Context, sampler core.PixelSampler, grid *framebuffer.Grid, cols ColumnRange) (err error) {
	x, y := cols.Start, 0

	// A panic must fail the render, not the process.
	defer func() {
		if r := recover(); r != nil {
			err = &SamplingError{X: x, Y: y, Err: fmt.Errorf("panic while rendering: %v", r)}
		}
	}()

	for x = cols.Start; x < cols.End; x++ {
		// Stop between columns once another worker failed or the caller cancelled.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		for y = 0; y < d.config.Height; y++ {
			color, sampleErr := sampler.SamplePixel(d.scene, x, y, d.config.SamplesPerPixel)
			if sampleErr != nil {
				return &SamplingError{X: x, Y: y, Err: sampleErr}
			}
			grid.Set(x, y, color)
		}
	}
	return nil
}
