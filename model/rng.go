package model

// linear congruential generator with the multiplier and increment of the
// reference word2vec implementation. Each worker owns one, so a single
// threaded run is fully reproducible for a fixed seed.
type lcg struct {
	state uint64
}

func (r *lcg) next() uint64 {
	r.state = r.state*25214903917 + 11
	return r.state
}

// uniform returns a value in [0, 1) quantized to the low 16 bits of the
// generator state, the same resolution the reference uses for its
// subsampling and weight initialization draws
func (r *lcg) uniform() float64 {
	return float64(r.next()&0xFFFF) / 65536
}
