package noise

// Fractal accumulates octaves of the two-sub-lattice noise at p. Each
// octave scales the untransformed position by the current frequency before
// applying the orientation transform, then advances frequency by lacunarity
// and amplitude by persistence. Zero octaves yields exactly 0.
func Fractal(p Vec3, seed, frequency, lacunarity, persistence float32, octaves int, o Orientation) float32 {
	var total float32
	freq := frequency
	amp := float32(1)
	for i := 0; i < octaves; i++ {
		total += Eval(p.Scale(freq), seed, o).Value * amp
		freq *= lacunarity
		amp *= persistence
	}
	return total
}
