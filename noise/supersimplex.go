package noise

// Gradient normalization constants. The cuboctahedron directions are scaled
// so both gradient types share the same magnitude and the two-lattice sum
// stays within roughly unit range.
const (
	cuboctScale = 1.22474487139
	rhombAdjust = 0.042942436724648037
	gradScale   = 3.5946317686139184
)

// sublatticeOffset shifts an evaluation onto the second cubic sub-lattice of
// the BCC lattice. A single kernel evaluation only gathers contributions
// centered near one sub-lattice, so every noise value is the sum of the
// kernel at X and at X + sublatticeOffset.
const sublatticeOffset = 144.5

// permute is the hash permutation polynomial.
func permute(t float32) float32 {
	return t * (t*34 + 133)
}

// hash folds an integer-valued lattice coordinate and a seed into an index
// in [0, 48): one permutation fold per axis, reduced mod 289 after the first
// two folds and mod 48 after the last.
func hash(v Vec3, seed float32) float32 {
	t := modf(permute(v.X+seed), 289)
	t = modf(permute(t+v.Y), 289)
	return modf(permute(t+v.Z), 48)
}

// gradient decodes a hash in [0, 48) into one of 48 fixed directions drawn
// from an augmented cuboctahedron.
func gradient(h float32) Vec3 {
	// Cube corner, one of the eight (+-1, +-1, +-1).
	cube := Vec3{
		modf(floorf(h), 2)*2 - 1,
		modf(floorf(h/2), 2)*2 - 1,
		modf(floorf(h/4), 2)*2 - 1,
	}

	// Cuboctahedron vertex: the corner with one axis zeroed.
	cuboct := cube
	switch int(h / 16) {
	case 0:
		cuboct.X = 0
	case 1:
		cuboct.Y = 0
	default:
		cuboct.Z = 0
	}

	// Half the gradients are rhombic-dodecahedral corrections of the cube
	// corner rather than the corner itself.
	sel := modf(floorf(h/8), 2)
	rhomb := cube.Scale(1 - sel).Add(cuboct.Add(cube.Cross(cuboct)).Scale(sel))

	g := cuboct.Scale(cuboctScale).Add(rhomb)
	return g.Scale((1 - rhombAdjust*sel) * gradScale)
}

// Sample is one noise evaluation: the scalar value and the analytic
// derivative of the field at the same point. The fractal compositor uses
// only the value; the derivative is available for callers that need surface
// normals or similar.
type Sample struct {
	Value float32
	Deriv Vec3
}

func (s Sample) add(o Sample) Sample {
	return Sample{s.Value + o.Value, s.Deriv.Add(o.Deriv)}
}

// kernel evaluates one cubic sub-lattice at p. It selects the four relevant
// lattice vertices around p, then blends quartic-falloff-weighted gradient
// extrapolations from each.
func kernel(p Vec3, seed float32) Sample {
	b := Vec3{floorf(p.X), floorf(p.Y), floorf(p.Z)}
	ix := p.X - b.X
	iy := p.Y - b.Y
	iz := p.Z - b.Z
	const iw = 2.5

	// Pick between each pair of opposite corners in the cube. This fixed
	// 4-vertex selection is what distinguishes the "S" variant from the full
	// simplex vertex set.
	s1 := floorf(ix*0.25 + iy*0.25 + iz*0.25 + iw*0.25)
	s2 := floorf(ix*-0.25 + iy*0.25 + iz*0.25 + iw*0.35)
	s3 := floorf(ix*0.25 + iy*-0.25 + iz*0.25 + iw*0.35)
	s4 := floorf(ix*0.25 + iy*0.25 + iz*-0.25 + iw*0.35)

	v1 := Vec3{b.X + s1, b.Y + s1, b.Z + s1}
	v2 := Vec3{b.X + 1 - s2, b.Y + s2, b.Z + s2}
	v3 := Vec3{b.X + s3, b.Y + 1 - s3, b.Z + s3}
	v4 := Vec3{b.X + s4, b.Y + s4, b.Z + 1 - s4}

	g1 := gradient(hash(v1, seed))
	g2 := gradient(hash(v2, seed))
	g3 := gradient(hash(v3, seed))
	g4 := gradient(hash(v4, seed))

	d1 := p.Sub(v1)
	d2 := p.Sub(v2)
	d3 := p.Sub(v3)
	d4 := p.Sub(v4)

	a1 := max32(0.75-d1.Dot(d1), 0)
	a2 := max32(0.75-d2.Dot(d2), 0)
	a3 := max32(0.75-d3.Dot(d3), 0)
	a4 := max32(0.75-d4.Dot(d4), 0)

	aa1, aa2, aa3, aa4 := a1*a1, a2*a2, a3*a3, a4*a4

	e1 := d1.Dot(g1)
	e2 := d2.Dot(g2)
	e3 := d3.Dot(g3)
	e4 := d4.Dot(g4)

	value := aa1*aa1*e1 + aa2*aa2*e2 + aa3*aa3*e3 + aa4*aa4*e4

	deriv := d1.Scale(aa1 * a1 * e1).
		Add(d2.Scale(aa2 * a2 * e2)).
		Add(d3.Scale(aa3 * a3 * e3)).
		Add(d4.Scale(aa4 * a4 * e4)).
		Scale(-8).
		Add(g1.Scale(aa1 * aa1)).
		Add(g2.Scale(aa2 * aa2)).
		Add(g3.Scale(aa3 * aa3)).
		Add(g4.Scale(aa4 * aa4))

	return Sample{value, deriv}
}

// bcc sums the kernel over both cubic sub-lattices.
func bcc(p Vec3, seed float32) Sample {
	return kernel(p, seed).add(kernel(p.AddScalar(sublatticeOffset), seed))
}

// conventionalMap is X' = dot(X, 2/3) - X. It is its own inverse transpose,
// so the same map carries the derivative back to the input frame.
func conventionalMap(p Vec3) Vec3 {
	d := (p.X + p.Y + p.Z) * (2.0 / 3.0)
	return Vec3{d - p.X, d - p.Y, d - p.Z}
}

// Rows of the ImproveXY orthonormal rotation. Not a skew transform: it
// aligns the lattice diagonal with Z so X/Y slices hide the grid.
const (
	ortA = 0.788675134594813
	ortB = -0.211324865405187
	ortC = -0.577350269189626
	ortD = 0.577350269189626
)

func improveXYMap(p Vec3) Vec3 {
	return Vec3{
		p.X*ortA + p.Y*ortB + p.Z*ortC,
		p.X*ortB + p.Y*ortA + p.Z*ortC,
		p.X*ortD + p.Y*ortD + p.Z*ortD,
	}
}

// improveXYUnmap applies the transpose (= inverse) rotation, carrying the
// derivative back to the caller's frame.
func improveXYUnmap(p Vec3) Vec3 {
	return Vec3{
		p.X*ortA + p.Y*ortB + p.Z*ortD,
		p.X*ortB + p.Y*ortA + p.Z*ortD,
		p.X*ortC + p.Y*ortC + p.Z*ortD,
	}
}

// Eval evaluates the two-sub-lattice noise at p under the given orientation.
// The returned derivative is expressed in the caller's coordinate frame.
// Pure and deterministic: identical inputs give bit-identical outputs.
func Eval(p Vec3, seed float32, o Orientation) Sample {
	if o == Conventional {
		s := bcc(conventionalMap(p), seed)
		s.Deriv = conventionalMap(s.Deriv)
		return s
	}
	s := bcc(improveXYMap(p), seed)
	s.Deriv = improveXYUnmap(s.Deriv)
	return s
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
