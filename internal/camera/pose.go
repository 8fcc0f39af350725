package camera

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/tetraview/pkg/geometry"
	"github.com/philipparndt/tetraview/pkg/picker"
)

// Pose is the camera state read by the renderer every frame
type Pose struct {
	Position geometry.Vector3
	Forward  geometry.Vector3 // unit length
	Up       geometry.Vector3 // fixed global up
	Aspect   float64
	FOV      float64 // vertical field of view in radians
}

// Right returns the unit vector to the right of the view direction
func (p Pose) Right() geometry.Vector3 {
	return p.Forward.Cross(p.Up).Normalize()
}

// Pitch returns the elevation of the view direction in radians
func (p Pose) Pitch() float64 {
	return p.Forward.Elevation()
}

// Ray returns the view ray through the screen centre crosshair
func (p Pose) Ray() picker.Ray {
	return picker.Ray{Origin: p.Position, Direction: p.Forward}
}

// ViewMatrix returns the world-to-camera transform
func (p Pose) ViewMatrix() mgl64.Mat4 {
	eye := vec(p.Position)
	return mgl64.LookAtV(eye, eye.Add(vec(p.Forward)), vec(p.Up))
}

// ProjectionMatrix returns the perspective transform for the given clip planes
func (p Pose) ProjectionMatrix(near, far float64) mgl64.Mat4 {
	return mgl64.Perspective(p.FOV, p.Aspect, near, far)
}

// Project maps a world point to normalized device coordinates.
// inFront is false for points on or behind the camera plane.
func (p Pose) Project(point geometry.Vector3, near, far float64) (ndc mgl64.Vec3, inFront bool) {
	clip := p.ProjectionMatrix(near, far).Mul4(p.ViewMatrix()).Mul4x1(vec(point).Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}

func vec(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
