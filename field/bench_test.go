package field

import (
	"testing"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/fieldgen/noise"
)

func benchParams() Params {
	p := testParams()
	p.Dims = [3]int{128, 128, 1}
	p.Octaves = 4
	return p
}

func BenchmarkGenerate(b *testing.B) {
	p := benchParams()
	dst := make([]byte, p.BufferLen())
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if err := Generate(p, dst); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFractalCell(b *testing.B) {
	p := benchParams()
	for n := 0; n < b.N; n++ {
		noise.Fractal(noise.Vec3{X: 12.3, Y: 4.5, Z: 6.7}, p.Seed,
			p.Frequency, p.Lacunarity, p.Persistence, p.Octaves, p.Orientation)
	}
}

// Baseline: classic fractal Perlin over the same grid, for comparing the
// cost of the two-sub-lattice kernel against a permutation-table approach.
func BenchmarkPerlinBaseline(b *testing.B) {
	p := benchParams()
	gen := perlin.NewPerlin(float64(p.Persistence), float64(p.Lacunarity), int32(p.Octaves), 12335)
	out := make([]float64, p.CellCount())
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for y := 0; y < p.Dims[1]; y++ {
			for x := 0; x < p.Dims[0]; x++ {
				fx := float64(x) * float64(p.Frequency)
				fy := float64(y) * float64(p.Frequency)
				out[y*p.Dims[0]+x] = gen.Noise3D(fx, fy, 0.5)
			}
		}
	}
}

// Benchmark the [-1,1] -> [0,255] rescale with a scalar loop.
func BenchmarkRescaleScalar(b *testing.B) {
	size := 128 * 128
	values := make([]float32, size)
	out := make([]float32, size)
	for i := range values {
		values[i] = float32(i%512)/256 - 1
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i, v := range values {
			out[i] = v*127.5 + 127.5
		}
	}
}

// Benchmark the same rescale with blas32.
func BenchmarkRescaleBLAS(b *testing.B) {
	size := 128 * 128
	values := make([]float32, size)
	out := make([]float32, size)
	ones := make([]float32, size)
	for i := range values {
		values[i] = float32(i%512)/256 - 1
		ones[i] = 1
	}

	vSrc := blas32.Vector{N: size, Inc: 1, Data: values}
	vOnes := blas32.Vector{N: size, Inc: 1, Data: ones}
	vOut := blas32.Vector{N: size, Inc: 1, Data: out}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range out {
			out[i] = 0
		}
		blas32.Axpy(127.5, vSrc, vOut)
		blas32.Axpy(127.5, vOnes, vOut)
	}
}
