// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pixelate turns images into low-resolution, reduced-palette
// renditions. The converter downsamples by a fixed factor, fits a palette
// via median cut with seeded k-means refinement, and maps every pixel onto
// it, optionally with Floyd-Steinberg dithering.
package pixelate

import (
	"context"
	"fmt"
	"image"
	"image/color"
)

// 🖌️ Converter holds the pixelation parameters. The zero value is not
// usable; populate every field (or start from config defaults).
type Converter struct {
	Factor            int     // Downscale divisor for both dimensions
	Colors            int     // Palette size to fit
	Dither            bool    // Apply Floyd-Steinberg error diffusion
	Alpha             float64 // Visibility threshold in [0,1] for alpha pixels
	RegeneratePalette bool    // Refit the palette for every image
	Seed              int64   // Seed for palette refinement

	palette []rgb // retained across images when RegeneratePalette is false
}

type cell struct {
	color   rgb
	visible bool
}

// Convert pixelates img. In strict mode any internally detected anomaly is
// returned as an error and no image is produced; in permissive mode
// anomalies are tolerated and a usable result is always returned unless the
// failure is structural. Given identical inputs and seed the output is
// deterministic.
func (c *Converter) Convert(ctx context.Context, img image.Image, strict bool) (image.Image, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	downW, downH := width/c.Factor, height/c.Factor
	if downW < 1 || downH < 1 {
		return nil, &structuralError{msg: fmt.Sprintf(
			"image %dx%d is smaller than the downscale factor %d", width, height, c.Factor)}
	}

	cells := c.downsample(img, downW, downH)

	visible := make([]rgb, 0, len(cells))
	for _, cl := range cells {
		if cl.visible {
			visible = append(visible, cl.color)
		}
	}
	if len(visible) == 0 {
		return nil, &structuralError{msg: "no pixels above the alpha visibility threshold"}
	}

	var warning error
	if c.palette == nil || c.RegeneratePalette {
		palette, warn, err := c.fitPalette(visible)
		if err != nil {
			return nil, err
		}
		c.palette = palette
		warning = warn
	}

	if strict && warning != nil {
		return nil, warning
	}

	out := image.NewNRGBA(image.Rect(0, 0, downW, downH))
	if c.Dither {
		c.ditherMap(cells, out, downW, downH)
	} else {
		c.nearestMap(cells, out, downW, downH)
	}
	return out, nil
}

// fitPalette builds the working palette for one image. Degenerate inputs are
// structural failures; an unconverged or undersized fit is a warning.
func (c *Converter) fitPalette(visible []rgb) (palette []rgb, warning, fatal error) {
	distinct := distinctColors(visible)
	if distinct < 2 {
		return nil, nil, &structuralError{msg: "degenerate palette: image has fewer than two distinct colors"}
	}

	initial := medianCut(visible, c.Colors)
	refined, converged := refine(visible, initial, c.Seed)

	switch {
	case distinct < c.Colors:
		warning = &warningError{msg: fmt.Sprintf(
			"image has only %d distinct colors for a %d color palette", distinct, c.Colors)}
	case !converged:
		warning = &warningError{msg: fmt.Sprintf(
			"palette refinement did not converge within %d iterations", maxRefineIterations)}
	}
	return refined, warning, nil
}

// downsample averages each Factor x Factor block into one cell and applies
// the alpha visibility threshold to the averaged alpha.
func (c *Converter) downsample(img image.Image, downW, downH int) []cell {
	bounds := img.Bounds()
	threshold := uint64(c.Alpha * 0xffff)

	cells := make([]cell, downW*downH)
	for by := 0; by < downH; by++ {
		for bx := 0; bx < downW; bx++ {
			var rSum, gSum, bSum, aSum uint64
			for dy := 0; dy < c.Factor; dy++ {
				for dx := 0; dx < c.Factor; dx++ {
					x := bounds.Min.X + bx*c.Factor + dx
					y := bounds.Min.Y + by*c.Factor + dy
					r, g, b, a := img.At(x, y).RGBA()
					rSum += uint64(r)
					gSum += uint64(g)
					bSum += uint64(b)
					aSum += uint64(a)
				}
			}
			n := uint64(c.Factor * c.Factor)
			avgA := aSum / n
			cells[by*downW+bx] = cell{
				color: rgb{
					uint8(rSum / n >> 8),
					uint8(gSum / n >> 8),
					uint8(bSum / n >> 8),
				},
				visible: avgA >= threshold,
			}
		}
	}
	return cells
}

// nearestMap snaps every visible cell to its closest palette entry.
func (c *Converter) nearestMap(cells []cell, out *image.NRGBA, downW, downH int) {
	for y := 0; y < downH; y++ {
		for x := 0; x < downW; x++ {
			cl := cells[y*downW+x]
			if !cl.visible {
				continue
			}
			p := c.palette[nearestIndex(cl.color, c.palette)]
			out.SetNRGBA(x, y, color.NRGBA{R: p.r, G: p.g, B: p.b, A: 0xff})
		}
	}
}

// ditherMap applies Floyd-Steinberg error diffusion while mapping onto the
// palette. Quantization error only propagates into visible cells.
func (c *Converter) ditherMap(cells []cell, out *image.NRGBA, downW, downH int) {
	buf := make([][3]float64, len(cells))
	for i, cl := range cells {
		buf[i] = [3]float64{float64(cl.color.r), float64(cl.color.g), float64(cl.color.b)}
	}

	diffuse := func(x, y int, errR, errG, errB, weight float64) {
		if x < 0 || x >= downW || y >= downH {
			return
		}
		idx := y*downW + x
		if !cells[idx].visible {
			return
		}
		buf[idx][0] += errR * weight
		buf[idx][1] += errG * weight
		buf[idx][2] += errB * weight
	}

	for y := 0; y < downH; y++ {
		for x := 0; x < downW; x++ {
			idx := y*downW + x
			if !cells[idx].visible {
				continue
			}
			want := rgb{clamp8(buf[idx][0]), clamp8(buf[idx][1]), clamp8(buf[idx][2])}
			p := c.palette[nearestIndex(want, c.palette)]
			out.SetNRGBA(x, y, color.NRGBA{R: p.r, G: p.g, B: p.b, A: 0xff})

			errR := buf[idx][0] - float64(p.r)
			errG := buf[idx][1] - float64(p.g)
			errB := buf[idx][2] - float64(p.b)
			diffuse(x+1, y, errR, errG, errB, 7.0/16)
			diffuse(x-1, y+1, errR, errG, errB, 3.0/16)
			diffuse(x, y+1, errR, errG, errB, 5.0/16)
			diffuse(x+1, y+1, errR, errG, errB, 1.0/16)
		}
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
