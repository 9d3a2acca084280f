package field

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// SliceImage wraps one z-plane of a generated buffer as an image without
// copying. The buffer layout already matches image.RGBA's pixel order.
func SliceImage(buf []byte, dims [3]int, z int) (*image.RGBA, error) {
	if z < 0 || z >= dims[2] {
		return nil, fmt.Errorf("%w: z = %d, dims = %v", ErrInvalidDimension, z, dims)
	}
	planeLen := 4 * dims[0] * dims[1]
	if len(buf) != planeLen*dims[2] {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), planeLen*dims[2])
	}
	return &image.RGBA{
		Pix:    buf[z*planeLen : (z+1)*planeLen],
		Stride: 4 * dims[0],
		Rect:   image.Rect(0, 0, dims[0], dims[1]),
	}, nil
}

// WriteVolume writes every z-plane of a generated buffer as a PNG named
// <prefix>_z<NNN>.png under dir, creating dir if needed.
func WriteVolume(dir, prefix string, buf []byte, dims [3]int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for z := 0; z < dims[2]; z++ {
		img, err := SliceImage(buf, dims, z)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_z%03d.png", prefix, z))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
	}
	return nil
}
