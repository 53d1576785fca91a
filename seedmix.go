package mapgen

// splitmix64 derives an independent, well-mixed 64-bit stream from a root
// seed, used to fan the world seed out into per-stage subseeds and, within
// a stage, into per-cell and per-particle hashes. Deterministic regardless
// of worker count or scheduling order; see various.KickOffChunkWorkers for
// the matching data-parallel helper.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// subSeed derives the seed for pipeline stage index i from the root seed.
func subSeed(root uint64, stage int) uint64 {
	return splitmix64(root ^ (uint64(stage)+1)*0xA24BAED4963EE407)
}

// cellHash returns a deterministic 64-bit hash for a grid cell under a
// stage seed, used wherever a stage needs parallel-safe per-cell
// randomness instead of a shared PRNG stream.
func cellHash(stageSeed uint64, x, y int) uint64 {
	h := splitmix64(stageSeed ^ uint64(uint32(x))*0x2545F4914F6CDD1D)
	h = splitmix64(h ^ uint64(uint32(y))*0x9E3779B185EBCA87)
	return h
}

// particleHash returns a deterministic 64-bit hash for particle index i
// (used by the hydraulic erosion droplets) under a stage seed.
func particleHash(stageSeed uint64, i int) uint64 {
	return splitmix64(stageSeed ^ uint64(uint32(i))*0xC2B2AE3D27D4EB4F)
}

// hashFloat01 maps a hash to a float64 in [0, 1).
func hashFloat01(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}

// hashRange maps a hash to an int in [0, n).
func hashRange(h uint64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(h % uint64(n))
}
