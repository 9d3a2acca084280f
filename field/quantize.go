package field

// Quantize clamps a noise value to [-1, 1] and rescales it to an 8-bit
// intensity replicated across RGB, with opaque alpha. Out-of-range inputs
// clamp silently; quantization never fails.
func Quantize(v float32) [4]byte {
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	intensity := byte((v + 1) / 2 * 255)
	return [4]byte{intensity, intensity, intensity, 255}
}
