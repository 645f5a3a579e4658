package geometry

// CoverageFraction reports the fraction of an image covered by a set of boxes.
//
// Box areas are summed, so overlapping boxes are double counted. This is a
// deliberate approximation, not a geometric union; downstream consumers are
// calibrated against it. The result is clamped to [0,1].
//
// When imageArea is zero there is no meaningful fraction and nil is returned;
// callers surface this as a null metric rather than an error.
func CoverageFraction(boxes []Box, imageArea float64) *float64 {
	if imageArea <= 0 {
		return nil
	}
	var total float64
	for _, b := range boxes {
		total += b.Area()
	}
	frac := total / imageArea
	if frac > 1 {
		frac = 1
	}
	return &frac
}
