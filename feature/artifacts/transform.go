package artifacts

import (
	"artifact-host/core/mre"
	"artifact-host/feature/contentpack"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// DefaultPosition places unpositioned artifacts one meter above the origin.
	DefaultPosition = mgl64.Vec3{0, 1, 0}
	// DefaultScale is unit scale.
	DefaultScale = mgl64.Vec3{1, 1, 1}
)

// EulerToQuat converts Euler angles in degrees to a rotation applied about X, then Y, then Z.
func EulerToQuat(deg contentpack.Vector3) mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(deg.X),
		mgl64.DegToRad(deg.Y),
		mgl64.DegToRad(deg.Z),
		mgl64.XYZ,
	)
}

// ResolveTransform applies the documented defaults to a descriptor's optional transform.
func ResolveTransform(d contentpack.Descriptor) mre.Transform {
	t := mre.Transform{
		Position: DefaultPosition,
		Rotation: mgl64.QuatIdent(),
		Scale:    DefaultScale,
	}
	if d.Position != nil {
		t.Position = mgl64.Vec3{d.Position.X, d.Position.Y, d.Position.Z}
	}
	if d.Scale != nil {
		t.Scale = mgl64.Vec3{d.Scale.X, d.Scale.Y, d.Scale.Z}
	}
	if d.Rotation != nil {
		t.Rotation = EulerToQuat(*d.Rotation)
	}
	return t
}

// ResolveWornTransform is ResolveTransform for an item attached to an avatar:
// an omitted position means no offset from the attach point.
func ResolveWornTransform(d contentpack.Descriptor) mre.Transform {
	t := ResolveTransform(d)
	if d.Position == nil {
		t.Position = mgl64.Vec3{}
	}
	return t
}
