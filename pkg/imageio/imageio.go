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

// Package imageio wraps image decode, encode, and scaling behind a small
// surface the batch driver can fake in tests.
package imageio

import (
	"context"
	"image"
	"image/png"
	"os"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// 🚫 ErrUnsupported is returned by Read when the file is not a decodable
// image format.
var ErrUnsupported = errors.New("unsupported image format")

// 💾 Store performs file-backed image I/O. Every file handle is scoped to a
// single call and closed on all paths.
type Store struct{}

// Read decodes the image at path. An undecodable file yields
// ErrUnsupported; callers skip such files rather than failing the batch.
func (Store) Read(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrUnsupported, path)
	}
	return img, nil
}

// Write encodes img as PNG at path, overwriting any existing file. The
// strict flag mirrors the converter contract: the PNG encoder has no
// tolerable-anomaly notion, so both modes behave identically here, but the
// parameter keeps the encode retry policy uniform across implementations.
func (Store) Write(ctx context.Context, path string, img image.Image, strict bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Errorf("creating output file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing output file: %w", err)
	}
	return nil
}

// Scale resizes img to width x height with nearest-neighbor interpolation:
// edge-extending, no anti-aliasing, value range preserved. Smooth kernels
// would blur the pixel-art blocks.
func (Store) Scale(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
