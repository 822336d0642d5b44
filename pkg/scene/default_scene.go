package scene

import (
	"github.com/df07/go-column-raytracer/pkg/core"
	"github.com/df07/go-column-raytracer/pkg/geometry"
)

// Viewing geometry of the default scene: a 4x4 backdrop 15 units away,
// projected onto a view plane 5 units in front of the camera.
const (
	BackgroundSizeX    = 4.0
	BackgroundSizeY    = 4.0
	BackgroundDistance = 15.0
	ViewPlaneDistance  = 5.0
)

// ViewPlaneSize returns the physical width and height of the default view plane
func ViewPlaneSize() (sizeX, sizeY float64) {
	sizeX = BackgroundSizeX * ViewPlaneDistance / BackgroundDistance
	sizeY = BackgroundSizeY * ViewPlaneDistance / BackgroundDistance
	return sizeX, sizeY
}

// NewDefaultScene creates the demo scene: seven spheres of assorted
// metallic, mirror, matte and transparent materials lit by three point lights
func NewDefaultScene() *Scene {
	red := core.NewVec3(1, 0.2, 0.2)
	blue := core.NewVec3(0.2, 0.2, 1)
	green := core.NewVec3(0.2, 1, 0.2)
	white := core.NewVec3(0.8, 0.8, 0.8)
	yellow := core.NewVec3(1, 1, 0.2)

	metallicRed := core.NewMaterial(red, white, 50)
	mirrorBlack := core.NewMaterial(core.Gray(0.0), core.Gray(0.9), 1000)
	matteWhite := core.NewMaterial(core.Gray(0.7), core.Gray(0.3), 1)
	metallicYellow := core.NewMaterial(yellow, white, 250)

	transparentGreen := core.NewScaledMaterial(green, 0.8, 0.2).WithTransparency(1.0, 1.03)
	transparentBlue := core.NewScaledMaterial(blue, 0.4, 0.6).WithTransparency(0.9, 0.7)

	s, err := NewBuilder().
		AddSphere(geometry.NewSphere(core.NewVec3(0, -2, 7), 1, transparentBlue)).
		AddSphere(geometry.NewSphere(core.NewVec3(-3, 2, 11), 2, metallicRed)).
		AddSphere(geometry.NewSphere(core.NewVec3(0, 2, 8), 1, mirrorBlack)).
		AddSphere(geometry.NewSphere(core.NewVec3(1.5, -0.5, 7), 1, transparentGreen)).
		AddSphere(geometry.NewSphere(core.NewVec3(-2, -1, 6), 0.7, metallicYellow)).
		AddSphere(geometry.NewSphere(core.NewVec3(2.2, 0.5, 9), 1.2, matteWhite)).
		AddSphere(geometry.NewSphere(core.NewVec3(4, -1, 10), 0.7, metallicRed)).
		AddLight(core.NewPointLight(core.NewVec3(-15, 0, -15), white)).
		AddLight(core.NewPointLight(core.NewVec3(1, 1, 0), blue)).
		AddLight(core.NewPointLight(core.NewVec3(0, -10, 6), red)).
		SetBackground(core.NewVec3(0.05, 0.05, 0.08)).
		SetAmbient(core.NewVec3(0.1, 0.1, 0.1)).
		SetRecursionLimit(20).
		SetCamera(core.NewCamera(core.NewVec3(0, 0, -20), core.NewVec3(0, 0, 0))).
		Build()
	if err != nil {
		// The default scene is fixed; a failure here is a programming error.
		panic(err)
	}
	return s
}
