package field

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSliceImage(t *testing.T) {
	dims := [3]int{4, 3, 2}
	buf := make([]byte, 4*4*3*2)
	for i := range buf {
		buf[i] = byte(i)
	}

	img, err := SliceImage(buf, dims, 1)
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect.Dx() != 4 || img.Rect.Dy() != 3 {
		t.Errorf("slice bounds = %v, want 4x3", img.Rect)
	}
	// Second plane starts at byte 4*4*3.
	if img.Pix[0] != buf[48] {
		t.Errorf("slice does not start at the z=1 plane")
	}

	if _, err := SliceImage(buf, dims, 2); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("out-of-range z = %v, want ErrInvalidDimension", err)
	}
	if _, err := SliceImage(buf[:8], dims, 0); !errors.Is(err, ErrBufferSize) {
		t.Errorf("short buffer = %v, want ErrBufferSize", err)
	}
}

func TestWriteVolume(t *testing.T) {
	p := testParams()
	p.Dims = [3]int{8, 6, 2}
	buf, err := GenerateAlloc(p)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := WriteVolume(dir, "frame", buf, p.Dims); err != nil {
		t.Fatal(err)
	}

	for z := 0; z < p.Dims[2]; z++ {
		path := filepath.Join(dir, map[int]string{0: "frame_z000.png", 1: "frame_z001.png"}[z])
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("missing slice: %v", err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decoding %s: %v", path, err)
		}
		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
			t.Errorf("%s bounds = %v, want 8x6", path, img.Bounds())
		}
	}
}
