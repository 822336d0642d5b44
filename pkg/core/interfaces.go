package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection, facing the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Scene is a read-only view of everything a PixelSampler needs.
// Implementations must not hand out aliases to their internal state.
type Scene interface {
	GetCamera() Camera
	GetShapes() []Shape
	GetLights() []PointLight
	GetBackground() Vec3
	GetAmbient() Vec3
	GetRecursionLimit() int
}

// PixelSampler produces the color of a single pixel. Implementations are
// called concurrently from several workers and must not mutate the scene.
type PixelSampler interface {
	SamplePixel(scene Scene, x, y, samples int) (Vec3, error)
}

// PixelSamplerFunc adapts an ordinary function to the PixelSampler interface
type PixelSamplerFunc func(scene Scene, x, y, samples int) (Vec3, error)

// SamplePixel calls f(scene, x, y, samples)
func (f PixelSamplerFunc) SamplePixel(scene Scene, x, y, samples int) (Vec3, error) {
	return f(scene, x, y, samples)
}
