// Package framebuffer holds the pixel grid a render writes into and the
// encoders that persist it.
package framebuffer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-column-raytracer/pkg/core"
)

// Grid is a width x height buffer of linear colors stored row-major.
//
// Set takes no lock. Concurrent calls are safe only when they address
// disjoint coordinates; the renderer guarantees that by giving every worker
// its own column range.
type Grid struct {
	width, height int
	pixels        []core.Vec3
}

// NewGrid allocates a black grid
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}, nil
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// Bounds returns the grid rectangle with its origin at (0, 0)
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// Set stores the color of pixel (x, y). Out-of-range coordinates panic.
func (g *Grid) Set(x, y int, c core.Vec3) {
	g.pixels[g.index(x, y)] = c
}

// At returns the color of pixel (x, y). Out-of-range coordinates panic.
func (g *Grid) At(x, y int) core.Vec3 {
	return g.pixels[g.index(x, y)]
}

func (g *Grid) index(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("framebuffer: pixel (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Equal reports whether both grids have the same size and identical pixels
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.pixels {
		if g.pixels[i] != other.pixels[i] {
			return false
		}
	}
	return true
}

// Image converts the grid to an 8-bit RGBA image, clamping each channel to [0, 1]
func (g *Grid) Image() *image.RGBA {
	img := image.NewRGBA(g.Bounds())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			img.SetRGBA(x, y, ToRGBA(g.pixels[y*g.width+x]))
		}
	}
	return img
}

// ToRGBA converts a linear color to an opaque 8-bit color
func ToRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255*c.X + 0.5),
		G: uint8(255*c.Y + 0.5),
		B: uint8(255*c.Z + 0.5),
		A: 255,
	}
}

// AverageLuminance returns the mean luminance of the clamped grid colors
func (g *Grid) AverageLuminance() float64 {
	total := 0.0
	for _, c := range g.pixels {
		total += c.Clamp(0.0, 1.0).Luminance()
	}
	return total / float64(len(g.pixels))
}
