package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-column-raytracer/pkg/core"
	"github.com/df07/go-column-raytracer/pkg/geometry"
	"github.com/df07/go-column-raytracer/pkg/scene"
)

func buildScene(t *testing.T, b *scene.Builder) *scene.Scene {
	t.Helper()
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected build error: %v", err)
	}
	return s
}

// singleSphereScene places a red matte sphere in front of a camera at the origin
func singleSphereScene(t *testing.T) *scene.Builder {
	t.Helper()
	red := core.NewMaterial(core.NewVec3(0.8, 0.1, 0.1), core.Gray(0), 1)
	return scene.NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 10), 2, red)).
		AddLight(core.NewPointLight(core.NewVec3(0, 0, 0), core.Gray(1))).
		SetBackground(core.NewVec3(0, 0, 0.5)).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
}

func TestViewPlane_BackgroundOnMiss(t *testing.T) {
	s := buildScene(t, scene.NewBuilder().
		SetBackground(core.NewVec3(0.05, 0.05, 0.08)).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, -20), core.NewVec3(0, 0, 0))))
	vp := NewViewPlane(4, 4, 1, 1, 5)

	color, err := vp.SamplePixel(s, 2, 1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if color != core.NewVec3(0.05, 0.05, 0.08) {
		t.Errorf("Expected background color, got %v", color)
	}
}

func TestViewPlane_CenterPixelHitsSphere(t *testing.T) {
	s := buildScene(t, singleSphereScene(t))
	vp := NewViewPlane(9, 9, 1, 1, 1)

	center, err := vp.SamplePixel(s, 4, 4, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// The light sits at the camera, so the center of the sphere faces it head on.
	if math.Abs(center.X-0.8) > 1e-6 || math.Abs(center.Y-0.1) > 1e-6 {
		t.Errorf("Expected fully lit red (0.8,0.1,0.1), got %v", center)
	}

	corner, err := vp.SamplePixel(s, 0, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if corner != core.NewVec3(0, 0, 0.5) {
		t.Errorf("Expected corner to see the background, got %v", corner)
	}
}

func TestViewPlane_ImageAxes(t *testing.T) {
	// A sphere above and to the right of the view axis must show up in the
	// top-right quadrant of the image.
	red := core.NewMaterial(core.NewVec3(1, 0, 0), core.Gray(0), 1)
	s := buildScene(t, scene.NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(3, 3, 10), 2, red)).
		SetAmbient(core.Gray(1)).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))))
	vp := NewViewPlane(10, 10, 2, 2, 1)

	// The sphere center projects onto (0.3, 0.3) on the plane, pixel (6, 3).
	topRight, _ := vp.SamplePixel(s, 6, 3, 1)
	bottomLeft, _ := vp.SamplePixel(s, 3, 6, 1)
	if topRight.X <= 0 {
		t.Errorf("Expected sphere in top-right pixel, got %v", topRight)
	}
	if bottomLeft.X != 0 {
		t.Errorf("Expected background in bottom-left pixel, got %v", bottomLeft)
	}
}

func TestViewPlane_DeterministicMultiSampling(t *testing.T) {
	s := scene.NewDefaultScene()
	sizeX, sizeY := scene.ViewPlaneSize()
	vp := NewViewPlane(40, 40, sizeX, sizeY, scene.ViewPlaneDistance)

	for _, pixel := range [][2]int{{20, 20}, {5, 33}, {39, 0}} {
		first, err := vp.SamplePixel(s, pixel[0], pixel[1], 8)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		second, err := vp.SamplePixel(s, pixel[0], pixel[1], 8)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if first != second {
			t.Errorf("Pixel %v: expected identical samples, got %v and %v", pixel, first, second)
		}
		if !first.IsFinite() {
			t.Errorf("Pixel %v: expected finite color, got %v", pixel, first)
		}
	}
}

func TestViewPlane_Errors(t *testing.T) {
	s := buildScene(t, singleSphereScene(t))
	vp := NewViewPlane(4, 3, 1, 1, 1)

	tests := []struct {
		name      string
		scene     core.Scene
		x, y, spp int
	}{
		{"negative x", s, -1, 0, 1},
		{"x past width", s, 4, 0, 1},
		{"y past height", s, 0, 3, 1},
		{"zero samples", s, 0, 0, 0},
		{"no scene", nil, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := vp.SamplePixel(tt.scene, tt.x, tt.y, tt.spp); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}

func TestViewPlane_MalformedSceneReportsError(t *testing.T) {
	s := buildScene(t, singleSphereScene(t).SetAmbient(core.NewVec3(math.NaN(), 0, 0)))
	vp := NewViewPlane(9, 9, 1, 1, 1)

	if _, err := vp.SamplePixel(s, 4, 4, 1); err == nil {
		t.Error("Expected non-finite color to be reported")
	}
}

func TestRaytracer_MirrorReflectsBackground(t *testing.T) {
	mirror := core.NewMaterial(core.Gray(0), core.Gray(1), 1000)
	s := buildScene(t, scene.NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 10), 2, mirror)).
		SetBackground(core.NewVec3(0, 1, 0)).
		SetRecursionLimit(3).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))))

	rt := newRaytracer(s)
	color := rt.rayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0, 1)
	if math.Abs(color.Y-1) > 1e-9 {
		t.Errorf("Expected perfect mirror to reflect the green background, got %v", color)
	}

	rt.recursionLimit = 0
	color = rt.rayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0, 1)
	if color.Y != 0 {
		t.Errorf("Expected no reflection with recursion limit 0, got %v", color)
	}
}

func TestRaytracer_ClearGlassTransmitsBackground(t *testing.T) {
	glass := core.NewMaterial(core.Gray(1), core.Gray(0), 1).WithTransparency(1, 1.5)
	s := buildScene(t, scene.NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 10), 2, glass)).
		SetBackground(core.NewVec3(0.2, 0.4, 0.6)).
		SetRecursionLimit(5).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))))

	rt := newRaytracer(s)
	color := rt.rayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 0, 1)
	if color.Subtract(core.NewVec3(0.2, 0.4, 0.6)).Length() > 1e-9 {
		t.Errorf("Expected clear glass on axis to show the background, got %v", color)
	}
}

func TestRaytracer_ShadowBlocksLight(t *testing.T) {
	matte := core.NewMaterial(core.Gray(1), core.Gray(0), 1)
	s := buildScene(t, scene.NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 10), 1, matte)).
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, matte)).
		AddLight(core.NewPointLight(core.NewVec3(0, 0, 0), core.Gray(1))).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))))

	rt := newRaytracer(s)
	// Start between the spheres and hit the side of the far one that faces
	// the light, which the near sphere shadows.
	hit, ok := rt.hitWorld(core.NewRay(core.NewVec3(0, 0, 7), core.NewVec3(0, 0, 1)), hitEpsilon, math.Inf(1))
	if !ok {
		t.Fatal("Expected to hit the far sphere")
	}
	diffuse, _ := rt.directLight(hit, core.NewVec3(0, 0, 1))
	if !diffuse.IsZero() {
		t.Errorf("Expected shadowed point to get no light, got %v", diffuse)
	}

	// The near sphere itself faces the light directly.
	hit, ok = rt.hitWorld(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), hitEpsilon, math.Inf(1))
	if !ok {
		t.Fatal("Expected to hit the near sphere")
	}
	diffuse, _ = rt.directLight(hit, core.NewVec3(0, 0, 1))
	if math.Abs(diffuse.X-1) > 1e-9 {
		t.Errorf("Expected lit point to get full light, got %v", diffuse)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Grazing ray leaving a dense medium
	uv := core.NewVec3(1, -0.1, 0).Normalize()
	n := core.NewVec3(0, 1, 0)
	if _, ok := refract(uv, n, 1.5); ok {
		t.Error("Expected total internal reflection")
	}

	straight, ok := refract(core.NewVec3(0, -1, 0), n, 1/1.5)
	if !ok || straight.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Expected head-on ray to pass straight through, got %v (ok=%t)", straight, ok)
	}
}

func TestViewPlane_PreparedMatchesUnprepared(t *testing.T) {
	s := scene.NewDefaultScene()
	vp := NewViewPlane(16, 12, 4.0/3, 4.0/3, 5)
	prepared := vp.Prepare(s)

	for _, pixel := range [][2]int{{0, 0}, {8, 6}, {15, 11}, {3, 9}} {
		want, err := vp.SamplePixel(s, pixel[0], pixel[1], 3)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		got, err := prepared.SamplePixel(s, pixel[0], pixel[1], 3)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Pixel %v: expected %v, got %v", pixel, want, got)
		}
	}

	if _, err := prepared.SamplePixel(s, 16, 0, 1); err == nil {
		t.Error("Expected out-of-range pixel to be reported by the prepared sampler")
	}
}

func TestViewPlane_PrepareWithoutSceneStillReportsError(t *testing.T) {
	vp := NewViewPlane(4, 4, 1, 1, 1)
	if _, err := vp.Prepare(nil).SamplePixel(nil, 0, 0, 1); err == nil {
		t.Error("Expected missing scene to be reported")
	}
}

func TestRaytracer_ShadowThroughGlassStillBlockedByOpaque(t *testing.T) {
	matte := core.NewMaterial(core.Gray(1), core.Gray(0), 1)
	glass := core.NewMaterial(core.Gray(1), core.Gray(0), 1).WithTransparency(0.5, 1)
	s := buildScene(t, scene.NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 10), 1, matte)).
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 6), 1, matte)).
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 3), 1, glass)).
		AddLight(core.NewPointLight(core.NewVec3(0, 0, 0), core.Gray(1))).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))))
	rt := newRaytracer(s)

	// The glass sphere is nearest the light, the opaque one is behind it.
	if v := rt.visibility(core.NewVec3(0, 0, 9-hitEpsilon), core.NewVec3(0, 0, -1), 9); v != 0 {
		t.Errorf("Expected opaque sphere behind glass to block the light, got %f", v)
	}

	// Between the glass and the opaque sphere only the glass attenuates, once.
	if v := rt.visibility(core.NewVec3(0, 0, 5-hitEpsilon), core.NewVec3(0, 0, -1), 5); math.Abs(v-0.5) > 1e-9 {
		t.Errorf("Expected transmittance 0.5 through one glass sphere, got %f", v)
	}
}

func TestRaytracer_ShadowThroughTwoGlassSpheresMultiplies(t *testing.T) {
	glass := core.NewMaterial(core.Gray(1), core.Gray(0), 1).WithTransparency(0.5, 1)
	s := buildScene(t, scene.NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 3), 1, glass)).
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 6), 1, glass)).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))))
	rt := newRaytracer(s)

	if v := rt.visibility(core.NewVec3(0, 0, 9), core.NewVec3(0, 0, -1), 9); math.Abs(v-0.25) > 1e-9 {
		t.Errorf("Expected transmittance 0.25 through two glass spheres, got %f", v)
	}
}
