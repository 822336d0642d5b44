package renderer

import (
	"math"

	"github.com/df07/go-column-raytracer/pkg/core"
)

const (
	// hitEpsilon offsets secondary rays from the surface they leave
	hitEpsilon = 1e-6
	// minContribution stops recursion once a branch can no longer change the pixel visibly
	minContribution = 1e-3
)

// raytracer shades rays against one scene snapshot with ambient, Lambert
// and Phong terms, hard shadows, mirror reflection and refraction
type raytracer struct {
	shapes         []core.Shape
	lights         []core.PointLight
	background     core.Vec3
	ambient        core.Vec3
	recursionLimit int
}

func newRaytracer(scene core.Scene) *raytracer {
	return &raytracer{
		shapes:         scene.GetShapes(),
		lights:         scene.GetLights(),
		background:     scene.GetBackground(),
		ambient:        scene.GetAmbient(),
		recursionLimit: scene.GetRecursionLimit(),
	}
}

// hitWorld checks if a ray hits any object in the scene
func (rt *raytracer) hitWorld(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range rt.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// rayColor returns the color carried back along ray. depth counts the
// secondary bounces taken so far and weight the largest factor by which
// this branch can still contribute to the pixel.
func (rt *raytracer) rayColor(ray core.Ray, depth int, weight float64) core.Vec3 {
	hit, isHit := rt.hitWorld(ray, hitEpsilon, math.Inf(1))
	if !isHit {
		return rt.background
	}

	m := hit.Material
	view := ray.Direction.Normalize()
	diffuse, specular := rt.directLight(hit, view)

	color := diffuse.Multiply(1 - m.Transparency).Add(specular)
	if depth >= rt.recursionLimit {
		return color
	}

	if reflectWeight := weight * maxComponent(m.Specular); reflectWeight > minContribution {
		reflected := core.NewRay(hit.Point.Add(hit.Normal.Multiply(hitEpsilon)), view.Reflect(hit.Normal))
		color = color.Add(m.Specular.MultiplyVec(rt.rayColor(reflected, depth+1, reflectWeight)))
	}

	if m.IsTransparent() {
		filter := filterColor(m.Diffuse)
		eta := m.RefractiveIndex
		if hit.FrontFace {
			eta = 1 / eta
		}
		// Total internal reflection leaves only the mirror term added above.
		if direction, ok := refract(view, hit.Normal, eta); ok {
			if refractWeight := weight * m.Transparency * maxComponent(filter); refractWeight > minContribution {
				refracted := core.NewRay(hit.Point.Subtract(hit.Normal.Multiply(hitEpsilon)), direction)
				transmitted := rt.rayColor(refracted, depth+1, refractWeight)
				color = color.Add(transmitted.MultiplyVec(filter).Multiply(m.Transparency))
			}
		}
	}

	return color
}

// directLight sums the ambient, diffuse and specular contributions of every
// visible light at the hit point
func (rt *raytracer) directLight(hit *core.HitRecord, view core.Vec3) (diffuse, specular core.Vec3) {
	m := hit.Material
	diffuse = rt.ambient.MultiplyVec(m.Diffuse)

	for _, light := range rt.lights {
		toLight := light.Position.Subtract(hit.Point)
		distance := toLight.Length()
		if distance == 0 {
			continue
		}
		l := toLight.Multiply(1 / distance)

		nDotL := hit.Normal.Dot(l)
		if nDotL <= 0 {
			continue
		}

		visibility := rt.visibility(hit.Point.Add(hit.Normal.Multiply(hitEpsilon)), l, distance)
		if visibility <= 0 {
			continue
		}
		intensity := light.Color.Multiply(visibility)

		diffuse = diffuse.Add(m.Diffuse.MultiplyVec(intensity).Multiply(nDotL))

		reflected := l.Negate().Reflect(hit.Normal)
		if rDotV := reflected.Dot(view.Negate()); rDotV > 0 {
			specular = specular.Add(m.Specular.MultiplyVec(intensity).Multiply(math.Pow(rDotV, m.Exponent)))
		}
	}
	return diffuse, specular
}

// visibility returns the fraction of light that travels distance along
// direction from origin: the product of the transparencies of every surface
// the shadow ray enters, 0 once it meets an opaque one
func (rt *raytracer) visibility(origin, direction core.Vec3, distance float64) float64 {
	transmittance := 1.0
	for transmittance > 0 {
		hit, isHit := rt.hitWorld(core.NewRay(origin, direction), hitEpsilon, distance)
		if !isHit {
			return transmittance
		}
		if !hit.Material.IsTransparent() {
			return 0
		}
		// Leaving a transparent object does not attenuate a second time.
		if hit.FrontFace {
			transmittance *= hit.Material.Transparency
		}
		origin = hit.Point
		distance -= hit.T
	}
	return 0
}

// refract bends the unit vector uv through a surface with unit normal n
// facing against uv. eta is the ratio of refractive indices.
func refract(uv, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	sin2Theta := eta * eta * (1 - cosTheta*cosTheta)
	if sin2Theta > 1 {
		return core.Vec3{}, false
	}
	perpendicular := uv.Add(n.Multiply(cosTheta)).Multiply(eta)
	parallel := n.Multiply(-math.Sqrt(math.Abs(1 - perpendicular.Dot(perpendicular))))
	return perpendicular.Add(parallel), true
}

// filterColor scales a diffuse color so its brightest channel is 1
func filterColor(c core.Vec3) core.Vec3 {
	peak := maxComponent(c)
	if peak <= 0 {
		return core.Gray(1)
	}
	return c.Multiply(1 / peak)
}

func maxComponent(c core.Vec3) float64 {
	return max(c.X, c.Y, c.Z)
}
