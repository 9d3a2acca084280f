// Package field evaluates a fractal noise volume over a rectangular domain
// and quantizes it into a caller-owned RGBA8 buffer.
package field

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/fieldgen/noise"
)

var (
	// ErrInvalidDimension reports a non-positive target dimension. A zero
	// dimension would divide the normalized cell position by zero and flood
	// the pipeline with NaN, so it is rejected before dispatch.
	ErrInvalidDimension = errors.New("field: target dimension must be positive")

	// ErrInvalidParameter reports a parameter outside its meaningful range.
	ErrInvalidParameter = errors.New("field: invalid parameter")

	// ErrBufferSize reports a destination buffer whose length does not match
	// the target dimensions.
	ErrBufferSize = errors.New("field: destination buffer length mismatch")
)

// Params is the immutable configuration for one dispatch. It is shared
// read-only by every cell evaluation.
type Params struct {
	Seed        float32
	Start       noise.Vec3 // domain corner A, caller's coordinate convention
	Next        noise.Vec3 // domain corner B
	Frequency   float32
	Lacunarity  float32
	Persistence float32
	Octaves     int
	Orientation noise.Orientation
	Dims        [3]int

	// FlipYZ negates the Y and Z components of both corners before
	// interpolation, matching the coordinate convention of the original
	// render target. Leave it off when the consumer expects the corners
	// verbatim.
	FlipYZ bool
}

// Validate checks the dispatch preconditions. Octaves of zero is valid and
// produces an all-mid-gray volume.
func (p Params) Validate() error {
	for i, d := range p.Dims {
		if d <= 0 {
			return fmt.Errorf("%w: dims[%d] = %d", ErrInvalidDimension, i, d)
		}
	}
	if p.Octaves < 0 {
		return fmt.Errorf("%w: octaves = %d", ErrInvalidParameter, p.Octaves)
	}
	return nil
}

// CellCount returns the number of output cells.
func (p Params) CellCount() int {
	return p.Dims[0] * p.Dims[1] * p.Dims[2]
}

// BufferLen returns the required destination buffer length in bytes.
func (p Params) BufferLen() int {
	return 4 * p.CellCount()
}
