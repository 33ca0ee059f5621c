package sa

// Neighbor derives a cut-and-reconnect candidate from path.
//
// For len(path) ≥ 3 a cut point k ∈ [1, len−2] is drawn uniformly, the prefix
// path[:k] is kept and the suffix is regrown from path[k−1] with the prefix
// marked visited. Shorter paths cannot be cut meaningfully and are replaced by
// a fresh full construction (reseeded=true). The input is never modified.
func (c *Constructor) Neighbor(path []int, attempts int) (candidate []int, reseeded bool) {
	if len(path) < 3 {
		candidate, _ = c.Construct(attempts)
		return candidate, true
	}
	cut := 1 + c.rng.Intn(len(path)-2)

	return c.Regrow(path[:cut]), false
}
