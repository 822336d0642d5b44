package renderer

import (
	"fmt"
	"math/rand/v2"

	"github.com/df07/go-column-raytracer/pkg/core"
)

// ViewPlane maps pixels onto a rectangle of physical size SizeX x SizeY
// placed Distance in front of the scene camera. It implements
// core.PixelSampler and holds no mutable state, so one value can serve
// every worker.
type ViewPlane struct {
	ResolutionX, ResolutionY int
	SizeX, SizeY             float64
	Distance                 float64
}

// NewViewPlane creates a view plane
func NewViewPlane(resolutionX, resolutionY int, sizeX, sizeY, distance float64) ViewPlane {
	return ViewPlane{
		ResolutionX: resolutionX,
		ResolutionY: resolutionY,
		SizeX:       sizeX,
		SizeY:       sizeY,
		Distance:    distance,
	}
}

// SamplePixel returns the average color of samples rays through pixel (x, y).
// A single sample goes through the pixel center; more samples are jittered
// inside the pixel with a generator seeded by the pixel position, so the
// result does not depend on which worker renders the pixel.
//
// Every call flattens the scene again; renders go through Prepare instead.
func (vp ViewPlane) SamplePixel(scene core.Scene, x, y, samples int) (core.Vec3, error) {
	if scene == nil {
		return core.Vec3{}, fmt.Errorf("no scene")
	}
	return vp.bind(scene).SamplePixel(scene, x, y, samples)
}

// Prepare implements ScenePreparer. The returned sampler traces scene with
// the camera basis and scene contents computed once.
func (vp ViewPlane) Prepare(scene core.Scene) core.PixelSampler {
	if scene == nil {
		return vp
	}
	return vp.bind(scene)
}

// boundViewPlane is a view plane tied to one scene snapshot
type boundViewPlane struct {
	vp        ViewPlane
	origin    core.Vec3
	center    core.Vec3
	right, up core.Vec3
	rt        *raytracer
}

func (vp ViewPlane) bind(scene core.Scene) *boundViewPlane {
	camera := scene.GetCamera()
	right, up, forward := camera.Basis()
	return &boundViewPlane{
		vp:        vp,
		origin:    camera.Position,
		center:    camera.Position.Add(forward.Multiply(vp.Distance)),
		right:     right,
		up:        up,
		rt:        newRaytracer(scene),
	}
}

// SamplePixel traces the scene the view plane was bound to; the scene
// argument is not consulted.
func (b *boundViewPlane) SamplePixel(_ core.Scene, x, y, samples int) (core.Vec3, error) {
	if x < 0 || x >= b.vp.ResolutionX || y < 0 || y >= b.vp.ResolutionY {
		return core.Vec3{}, fmt.Errorf("pixel (%d,%d) outside %dx%d view plane", x, y, b.vp.ResolutionX, b.vp.ResolutionY)
	}
	if samples < 1 {
		return core.Vec3{}, fmt.Errorf("sample count must be at least 1, got %d", samples)
	}

	var random *rand.Rand
	if samples > 1 {
		random = rand.New(rand.NewPCG(uint64(y), uint64(x)+42))
	}

	colorAccum := core.Vec3{}
	for sample := 0; sample < samples; sample++ {
		dx, dy := 0.5, 0.5
		if random != nil {
			dx, dy = random.Float64(), random.Float64()
		}

		// Image y grows downwards, the plane's up vector upwards.
		u := ((float64(x)+dx)/float64(b.vp.ResolutionX) - 0.5) * b.vp.SizeX
		v := (0.5 - (float64(y)+dy)/float64(b.vp.ResolutionY)) * b.vp.SizeY
		target := b.center.Add(b.right.Multiply(u)).Add(b.up.Multiply(v))

		ray := core.NewRay(b.origin, target.Subtract(b.origin))
		colorAccum = colorAccum.Add(b.rt.rayColor(ray, 0, 1))
	}

	color := colorAccum.Multiply(1.0 / float64(samples))
	if !color.IsFinite() {
		return core.Vec3{}, fmt.Errorf("non-finite color %v at pixel (%d,%d)", color, x, y)
	}
	return color, nil
}
