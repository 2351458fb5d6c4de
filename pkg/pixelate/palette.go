package pixelate

import (
	"math/rand"
	"sort"
)

type rgb struct {
	r, g, b uint8
}

// maxRefineIterations bounds the k-means refinement pass.
const maxRefineIterations = 16

func channelRange(px []rgb, ch int) int {
	if len(px) == 0 {
		return 0
	}
	minV, maxV := 255, 0
	for _, p := range px {
		var v int
		switch ch {
		case 0:
			v = int(p.r)
		case 1:
			v = int(p.g)
		default:
			v = int(p.b)
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return maxV - minV
}

func medianCutSplit(px []rgb) ([]rgb, []rgb) {
	dominant := 0
	if channelRange(px, 1) > channelRange(px, dominant) {
		dominant = 1
	}
	if channelRange(px, 2) > channelRange(px, dominant) {
		dominant = 2
	}

	sort.Slice(px, func(i, j int) bool {
		switch dominant {
		case 0:
			return px[i].r < px[j].r
		case 1:
			return px[i].g < px[j].g
		default:
			return px[i].b < px[j].b
		}
	})

	mid := len(px) / 2
	left := make([]rgb, mid)
	right := make([]rgb, len(px)-mid)
	copy(left, px[:mid])
	copy(right, px[mid:])
	return left, right
}

// medianCut reduces pixels to at most k representative colors by repeatedly
// splitting the box with the widest channel range.
func medianCut(pixels []rgb, k int) []rgb {
	work := make([]rgb, len(pixels))
	copy(work, pixels)

	boxes := [][]rgb{work}
	for len(boxes) < k {
		widestIdx, widestRange := 0, -1
		for i, box := range boxes {
			r := channelRange(box, 0)
			if g := channelRange(box, 1); g > r {
				r = g
			}
			if b := channelRange(box, 2); b > r {
				r = b
			}
			if r > widestRange {
				widestRange = r
				widestIdx = i
			}
		}
		if len(boxes[widestIdx]) <= 1 {
			break
		}
		left, right := medianCutSplit(boxes[widestIdx])
		boxes[widestIdx] = left
		boxes = append(boxes, right)
	}

	palette := make([]rgb, 0, len(boxes))
	for _, box := range boxes {
		palette = append(palette, averageColor(box))
	}
	return palette
}

func averageColor(px []rgb) rgb {
	if len(px) == 0 {
		return rgb{}
	}
	var rSum, gSum, bSum int64
	for _, p := range px {
		rSum += int64(p.r)
		gSum += int64(p.g)
		bSum += int64(p.b)
	}
	n := int64(len(px))
	return rgb{uint8(rSum / n), uint8(gSum / n), uint8(bSum / n)}
}

// refine runs seeded k-means over the median-cut palette. It returns the
// refined palette and whether the assignment stabilized within the iteration
// bound; an unconverged fit is still usable, but callers surface it as a
// warning in strict mode.
func refine(pixels, palette []rgb, seed int64) ([]rgb, bool) {
	rng := rand.New(rand.NewSource(seed))
	centroids := make([]rgb, len(palette))
	copy(centroids, palette)

	assignments := make([]int, len(pixels))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxRefineIterations; iter++ {
		changed := false
		for i, p := range pixels {
			idx := nearestIndex(p, centroids)
			if idx != assignments[i] {
				assignments[i] = idx
				changed = true
			}
		}
		if !changed {
			return centroids, true
		}

		sums := make([][3]int64, len(centroids))
		counts := make([]int64, len(centroids))
		for i, p := range pixels {
			a := assignments[i]
			sums[a][0] += int64(p.r)
			sums[a][1] += int64(p.g)
			sums[a][2] += int64(p.b)
			counts[a]++
		}
		for i := range centroids {
			if counts[i] == 0 {
				// Reseed empty clusters from a random pixel so the
				// palette keeps its requested size.
				centroids[i] = pixels[rng.Intn(len(pixels))]
				continue
			}
			centroids[i] = rgb{
				uint8(sums[i][0] / counts[i]),
				uint8(sums[i][1] / counts[i]),
				uint8(sums[i][2] / counts[i]),
			}
		}
	}
	return centroids, false
}

func nearestIndex(p rgb, palette []rgb) int {
	bestIdx, bestDist := 0, int(^uint(0)>>1)
	for i, c := range palette {
		if d := distSq(p, c); d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	return bestIdx
}

func distSq(a, b rgb) int {
	dr := int(a.r) - int(b.r)
	dg := int(a.g) - int(b.g)
	db := int(a.b) - int(b.b)
	return dr*dr + dg*dg + db*db
}

func distinctColors(px []rgb) int {
	seen := make(map[rgb]struct{}, len(px))
	for _, p := range px {
		seen[p] = struct{}{}
	}
	return len(seen)
}
