package scene

import (
	"fmt"
	"slices"

	"github.com/df07/go-column-raytracer/pkg/core"
	"github.com/df07/go-column-raytracer/pkg/geometry"
)

// DefaultRecursionLimit bounds reflection and refraction depth when the
// builder is not told otherwise
const DefaultRecursionLimit = 5

// Scene is an immutable snapshot of everything needed for rendering.
// Accessors return copies, so a renderer holding a *Scene cannot change it.
type Scene struct {
	spheres        []geometry.Sphere
	lights         []core.PointLight
	background     core.Vec3
	ambient        core.Vec3
	recursionLimit int
	camera         core.Camera
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera { return s.camera }

// GetBackground returns the color seen by rays that hit nothing
func (s *Scene) GetBackground() core.Vec3 { return s.background }

// GetAmbient returns the ambient light color
func (s *Scene) GetAmbient() core.Vec3 { return s.ambient }

// GetRecursionLimit returns the maximum number of secondary bounces
func (s *Scene) GetRecursionLimit() int { return s.recursionLimit }

// GetLights returns a copy of the scene lights
func (s *Scene) GetLights() []core.PointLight { return slices.Clone(s.lights) }

// GetSpheres returns a copy of the scene spheres
func (s *Scene) GetSpheres() []geometry.Sphere { return slices.Clone(s.spheres) }

// GetShapes returns the spheres as shapes. Spheres are values, so the
// interface values do not alias the scene's storage.
func (s *Scene) GetShapes() []core.Shape {
	shapes := make([]core.Shape, len(s.spheres))
	for i, sphere := range s.spheres {
		shapes[i] = sphere
	}
	return shapes
}

// Builder collects scene elements and produces an immutable Scene
type Builder struct {
	spheres        []geometry.Sphere
	lights         []core.PointLight
	background     core.Vec3
	ambient        core.Vec3
	recursionLimit int
	camera         core.Camera
	cameraSet      bool
}

// NewBuilder creates an empty scene builder
func NewBuilder() *Builder {
	return &Builder{recursionLimit: DefaultRecursionLimit}
}

// AddSphere adds a sphere to the scene
func (b *Builder) AddSphere(sphere geometry.Sphere) *Builder {
	b.spheres = append(b.spheres, sphere)
	return b
}

// AddLight adds a point light to the scene
func (b *Builder) AddLight(light core.PointLight) *Builder {
	b.lights = append(b.lights, light)
	return b
}

// SetBackground sets the color returned for rays that escape the scene
func (b *Builder) SetBackground(color core.Vec3) *Builder {
	b.background = color
	return b
}

// SetAmbient sets the ambient light color
func (b *Builder) SetAmbient(color core.Vec3) *Builder {
	b.ambient = color
	return b
}

// SetRecursionLimit sets the maximum reflection/refraction depth
func (b *Builder) SetRecursionLimit(limit int) *Builder {
	b.recursionLimit = limit
	return b
}

// SetCamera sets the camera
func (b *Builder) SetCamera(camera core.Camera) *Builder {
	b.camera = camera
	b.cameraSet = true
	return b
}

// Build validates the collected elements and returns an immutable scene.
// The builder may be reused afterwards without affecting the returned scene.
func (b *Builder) Build() (*Scene, error) {
	if !b.cameraSet {
		return nil, fmt.Errorf("scene has no camera")
	}
	if b.camera.Position == b.camera.LookAt {
		return nil, fmt.Errorf("camera position and look-at point coincide at %v", b.camera.Position)
	}
	if b.recursionLimit < 0 {
		return nil, fmt.Errorf("recursion limit must be non-negative, got %d", b.recursionLimit)
	}
	for i, sphere := range b.spheres {
		if !sphere.Validate() {
			return nil, fmt.Errorf("sphere %d is invalid: center %v radius %f", i, sphere.Center, sphere.Radius)
		}
	}

	return &Scene{
		spheres:        slices.Clone(b.spheres),
		lights:         slices.Clone(b.lights),
		background:     b.background,
		ambient:        b.ambient,
		recursionLimit: b.recursionLimit,
		camera:         b.camera,
	}, nil
}
