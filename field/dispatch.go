package field

import (
	"fmt"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/pthm-cable/fieldgen/noise"
)

// Execution tile extents. Purely a work-partitioning choice: each tile is an
// independent unit handed to a worker goroutine, and correctness does not
// depend on the grouping.
const (
	tileW = 8
	tileH = 8
)

// Generate evaluates the fractal field for every cell of p.Dims and writes
// quantized RGBA cells into dst, which must be exactly p.BufferLen() bytes.
// Layout is row-major with X fastest: cell (x,y,z) lands at byte offset
// 4*(x + y*dimX + z*dimX*dimY).
//
// Cells are evaluated concurrently; each worker writes only its own disjoint
// byte range and reads only from p, so no synchronization is needed beyond
// the final join. Generate either rejects its inputs up front or runs every
// cell to completion.
func Generate(p Params, dst []byte) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(dst) != p.BufferLen() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(dst), p.BufferLen())
	}

	a, b := p.Start, p.Next
	if p.FlipYZ {
		a.Y, a.Z = -a.Y, -a.Z
		b.Y, b.Z = -b.Y, -b.Z
	}

	dx, dy, dz := p.Dims[0], p.Dims[1], p.Dims[2]
	tilesX := (dx + tileW - 1) / tileW
	tilesY := (dy + tileH - 1) / tileH

	parallel.For(tilesX*tilesY*dz, func(i, _ int) {
		tx := (i % tilesX) * tileW
		ty := (i / tilesX % tilesY) * tileH
		z := i / (tilesX * tilesY)

		// Tiles overhanging the domain clip at the bounds: no write for
		// out-of-range indices.
		for y := ty; y < ty+tileH && y < dy; y++ {
			for x := tx; x < tx+tileW && x < dx; x++ {
				generateCell(&p, a, b, x, y, z, dst)
			}
		}
	})

	return nil
}

// GenerateAlloc is Generate with a freshly allocated destination buffer.
func GenerateAlloc(p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dst := make([]byte, p.BufferLen())
	if err := Generate(p, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// generateCell evaluates one grid cell and writes its 4 output bytes. The
// corners a and b already carry any axis-sign adjustment.
func generateCell(p *Params, a, b noise.Vec3, x, y, z int, dst []byte) {
	t := noise.Vec3{
		X: float32(x) / float32(p.Dims[0]),
		Y: float32(y) / float32(p.Dims[1]),
		Z: float32(z) / float32(p.Dims[2]),
	}
	pos := noise.Vec3{
		X: a.X + (b.X-a.X)*t.X,
		Y: a.Y + (b.Y-a.Y)*t.Y,
		Z: a.Z + (b.Z-a.Z)*t.Z,
	}

	v := noise.Fractal(pos, p.Seed, p.Frequency, p.Lacunarity, p.Persistence, p.Octaves, p.Orientation)

	cell := Quantize(v)
	off := 4 * (x + y*p.Dims[0] + z*p.Dims[0]*p.Dims[1])
	copy(dst[off:off+4], cell[:])
}
