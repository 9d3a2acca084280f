// Package noise implements fractal 3D OpenSimplex2S ("SuperSimplex") value
// noise on the body-centered cubic lattice. All arithmetic is float32 to
// stay faithful to the compute-shader construction this is ported from.
package noise

import "math"

// Vec3 is a 3-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// AddScalar returns v with s added to every component.
func (v Vec3) AddScalar(s float32) Vec3 {
	return Vec3{v.X + s, v.Y + s, v.Z + s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Orientation selects the coordinate pre-transform applied before lattice
// evaluation.
type Orientation int

const (
	// ImproveXY rotates the domain so the X/Y plane is isotropic and Z acts
	// as a distinguished axis. Good for height maps or time-varied slices.
	ImproveXY Orientation = iota
	// Conventional treats all three axes symmetrically.
	Conventional
)

// String returns the config-file name of the orientation.
func (o Orientation) String() string {
	if o == Conventional {
		return "conventional"
	}
	return "improve_xy"
}

func floorf(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// modf is the GLSL-style modulus: the result has the sign of y.
func modf(x, y float32) float32 {
	return x - floorf(x/y)*y
}
