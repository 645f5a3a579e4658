package imaging

import (
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry is one dominant color with the fraction of samples it covers.
type PaletteEntry struct {
	Hex string  `json:"hex"` // "#rrggbb"
	Pct float64 `json:"pct"` // fraction of counted samples, 0-1
}

type rgb struct {
	r, g, b uint8
}

// Palette extracts up to k dominant colors from an image.
//
// The image is quantized to an adaptive palette via median cut, then sampled
// on a coarse grid whose step is max(1, floor(sqrt(w*h)/64)). That keeps the
// sample count roughly constant regardless of resolution, trading exact
// fractions for bounded cost on large images. Fractions are expressed over
// the samples counted, not total pixels.
//
// Entries are ordered by descending fraction. Output is deterministic for a
// fixed image and k: equal counts break ties on the quantizer's bucket order.
func Palette(img image.Image, k int) []PaletteEntry {
	entries := []PaletteEntry{}
	if k <= 0 {
		return entries
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return entries
	}

	step := int(math.Sqrt(float64(w*h))) / 64
	if step < 1 {
		step = 1
	}

	samples := make([]rgb, 0, (w/step+1)*(h/step+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, _ := img.At(x, y).RGBA()
			samples = append(samples, rgb{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}
	if len(samples) == 0 {
		return entries
	}

	buckets := medianCut(samples, k)

	type ranked struct {
		order int
		count int
		color rgb
	}
	// Buckets whose means round to the same color collapse into one entry;
	// the merged entry keeps the earliest bucket's position for tie-breaks.
	total := 0
	ranks := make([]ranked, 0, len(buckets))
	seen := make(map[rgb]int, len(buckets))
	for _, bucket := range buckets {
		total += len(bucket)
		c := meanColor(bucket)
		if i, ok := seen[c]; ok {
			ranks[i].count += len(bucket)
			continue
		}
		seen[c] = len(ranks)
		ranks = append(ranks, ranked{order: len(ranks), count: len(bucket), color: c})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].count != ranks[j].count {
			return ranks[i].count > ranks[j].count
		}
		return ranks[i].order < ranks[j].order
	})

	for _, rk := range ranks {
		c := colorful.Color{
			R: float64(rk.color.r) / 255.0,
			G: float64(rk.color.g) / 255.0,
			B: float64(rk.color.b) / 255.0,
		}
		entries = append(entries, PaletteEntry{
			Hex: c.Hex(),
			Pct: float64(rk.count) / float64(total),
		})
	}
	return entries
}

// medianCut splits the sample set into at most k color buckets by repeatedly
// halving the bucket with the widest channel range at its median. The split
// order is deterministic, which makes the resulting bucket order a stable
// tie-break for ranking.
func medianCut(samples []rgb, k int) [][]rgb {
	buckets := [][]rgb{samples}

	for len(buckets) < k {
		// Widest bucket wins; earlier buckets win ties.
		widest := -1
		widestRange := 0
		for i, b := range buckets {
			if _, r := widestChannel(b); r > widestRange {
				widest = i
				widestRange = r
			}
		}
		if widest < 0 {
			break // nothing left to split
		}

		b := buckets[widest]
		ch, _ := widestChannel(b)
		sorted := make([]rgb, len(b))
		copy(sorted, b)
		sort.SliceStable(sorted, func(i, j int) bool {
			return channelOf(sorted[i], ch) < channelOf(sorted[j], ch)
		})

		mid := len(sorted) / 2
		next := make([][]rgb, 0, len(buckets)+1)
		next = append(next, buckets[:widest]...)
		next = append(next, sorted[:mid], sorted[mid:])
		next = append(next, buckets[widest+1:]...)
		buckets = next
	}
	return buckets
}

// widestChannel returns the channel index (0=r, 1=g, 2=b) with the largest
// value range in the bucket, and that range. A range of zero means the bucket
// is a single color and cannot be split.
func widestChannel(bucket []rgb) (int, int) {
	if len(bucket) < 2 {
		return 0, 0
	}
	minC := [3]int{255, 255, 255}
	maxC := [3]int{0, 0, 0}
	for _, s := range bucket {
		for ch := 0; ch < 3; ch++ {
			v := channelOf(s, ch)
			if v < minC[ch] {
				minC[ch] = v
			}
			if v > maxC[ch] {
				maxC[ch] = v
			}
		}
	}
	best, bestRange := 0, 0
	for ch := 0; ch < 3; ch++ {
		if r := maxC[ch] - minC[ch]; r > bestRange {
			best = ch
			bestRange = r
		}
	}
	return best, bestRange
}

func channelOf(s rgb, ch int) int {
	switch ch {
	case 0:
		return int(s.r)
	case 1:
		return int(s.g)
	default:
		return int(s.b)
	}
}

func meanColor(bucket []rgb) rgb {
	if len(bucket) == 0 {
		return rgb{}
	}
	var sr, sg, sb int
	for _, s := range bucket {
		sr += int(s.r)
		sg += int(s.g)
		sb += int(s.b)
	}
	n := len(bucket)
	return rgb{uint8(sr / n), uint8(sg / n), uint8(sb / n)}
}
