package geometry

// Matrix4 is a 4x4 affine transform stored column-major, the layout glTF uses
type Matrix4 [16]float64

// Identity returns the identity transform
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a transform that moves points by t
func Translation(t Vector3) Matrix4 {
	m := Identity()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// UniformScaling returns a transform that scales points by s about the origin
func UniformScaling(s float64) Matrix4 {
	m := Identity()
	m[0], m[5], m[10] = s, s, s
	return m
}

// Compose builds translation * rotation * scale from glTF TRS components.
// rotation is a unit quaternion (x, y, z, w).
func Compose(translation Vector3, rotation [4]float64, scale Vector3) Matrix4 {
	x, y, z, w := rotation[0], rotation[1], rotation[2], rotation[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Matrix4{
		(1 - 2*(yy+zz)) * scale.X, 2 * (xy + wz) * scale.X, 2 * (xz - wy) * scale.X, 0,
		2 * (xy - wz) * scale.Y, (1 - 2*(xx+zz)) * scale.Y, 2 * (yz + wx) * scale.Y, 0,
		2 * (xz + wy) * scale.Z, 2 * (yz - wx) * scale.Z, (1 - 2*(xx+yy)) * scale.Z, 0,
		translation.X, translation.Y, translation.Z, 1,
	}
}

// Mul returns m * other, so other is applied first
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var out Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * other[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// TransformPoint applies the transform to a point (w = 1)
func (m Matrix4) TransformPoint(p Vector3) Vector3 {
	return Vector3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// IsIdentity reports whether m is exactly the identity
func (m Matrix4) IsIdentity() bool {
	return m == Identity()
}
