package actor

import "github.com/go-gl/mathgl/mgl64"

// Rotation returns the rotation matrix for an orientation in radians.
// Its transpose is the inverse rotation.
func Rotation(radians float64) mgl64.Mat2 {
	return mgl64.Rotate2D(radians)
}

// Cross returns the scalar (z) component of the cross product a × b
func Cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// CrossScalar returns s × v, the vector perpendicular to v scaled by s.
// Used to get the linear velocity of a point from an angular velocity.
func CrossScalar(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v[1], s * v[0]}
}

// Normalize returns v with unit length. A zero vector is returned unchanged
// instead of producing NaN components.
func Normalize(v mgl64.Vec2) mgl64.Vec2 {
	length := v.Len()
	if length == 0 {
		return v
	}

	return v.Mul(1.0 / length)
}

func LenSqr(v mgl64.Vec2) float64 {
	return v.Dot(v)
}

func DistSqr(a, b mgl64.Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Next returns the index following i in a closed loop of count elements
func Next(i, count int) int {
	if i+1 < count {
		return i + 1
	}
	return 0
}
