package core

// Camera is a pinhole camera looking from Position towards LookAt
type Camera struct {
	Position Vec3
	LookAt   Vec3
	Up       Vec3
}

// NewCamera creates a camera with +Y as the up hint
func NewCamera(position, lookAt Vec3) Camera {
	return Camera{
		Position: position,
		LookAt:   lookAt,
		Up:       NewVec3(0, 1, 0),
	}
}

// Basis returns the camera's orthonormal right, up and forward vectors
func (c Camera) Basis() (right, up, forward Vec3) {
	forward = c.LookAt.Subtract(c.Position).Normalize()
	hint := c.Up
	if hint.IsZero() {
		hint = NewVec3(0, 1, 0)
	}
	right = hint.Cross(forward).Normalize()
	if right.IsZero() {
		// Looking straight along the up hint; pick any perpendicular axis.
		right = NewVec3(1, 0, 0).Cross(forward).Normalize()
	}
	up = forward.Cross(right)
	return right, up, forward
}
