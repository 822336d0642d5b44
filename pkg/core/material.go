package core

// DefaultSpecularExponent is used by NewScaledMaterial
const DefaultSpecularExponent = 10.0

// Material describes a Phong surface. It is a plain value; "modifiers"
// return a changed copy.
type Material struct {
	Diffuse         Vec3    // Diffuse reflectance
	Specular        Vec3    // Specular reflectance, also the mirror weight
	Exponent        float64 // Phong exponent
	Transparency    float64 // Fraction of light transmitted, 0 for opaque
	RefractiveIndex float64 // Index of refraction relative to air
}

// NewMaterial creates an opaque material from explicit diffuse and specular colors
func NewMaterial(diffuse, specular Vec3, exponent float64) Material {
	return Material{
		Diffuse:         diffuse,
		Specular:        specular,
		Exponent:        exponent,
		RefractiveIndex: 1,
	}
}

// NewScaledMaterial creates an opaque material whose diffuse color is color*kd
// and whose specular color is a gray of intensity ks
func NewScaledMaterial(color Vec3, kd, ks float64) Material {
	return NewMaterial(color.Multiply(kd), Gray(ks), DefaultSpecularExponent)
}

// WithTransparency returns a copy of m that transmits light
func (m Material) WithTransparency(transparency, refractiveIndex float64) Material {
	m.Transparency = transparency
	m.RefractiveIndex = refractiveIndex
	return m
}

// IsTransparent reports whether any light passes through the surface
func (m Material) IsTransparent() bool {
	return m.Transparency > 0
}

// PointLight is an infinitely small light source
type PointLight struct {
	Position Vec3
	Color    Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color Vec3) PointLight {
	return PointLight{Position: position, Color: color}
}
