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

package operation

import (
	"context"
	"image"

	"gitlab.com/tozd/go/errors"
)

// IsStructural reports whether err marks an algorithmic failure that cannot
// produce usable output. Structural failures are terminal for the current
// image and are never retried.
func IsStructural(err error) bool {
	var s interface{ StructuralFailure() bool }
	return errors.As(err, &s) && s.StructuralFailure()
}

// Attempt runs the two-phase conversion policy: one strict call, and on a
// non-structural anomaly exactly one permissive re-invocation whose result
// is accepted unconditionally. The strict call's anomaly is preserved as the
// Degraded outcome's warning so it can be surfaced. A numeric routine can
// legitimately produce a usable result despite an imperfect fit; the strict
// first pass exists so the caller can still see the anomaly.
func Attempt(ctx context.Context, conv Converter, img image.Image) Outcome {
	converted, err := conv.Convert(ctx, img, true)
	if err == nil {
		return Outcome{Kind: Success, Image: converted}
	}
	if IsStructural(err) {
		return Outcome{Kind: Fatal, Err: err}
	}

	retried, retryErr := conv.Convert(ctx, img, false)
	if retryErr != nil {
		// Permissive mode only surfaces structural failures.
		return Outcome{Kind: Fatal, Err: retryErr}
	}
	return Outcome{Kind: Degraded, Image: retried, Warning: err}
}

// AttemptEncode applies the same strict-then-permissive policy to the encode
// step. A strict failure becomes the returned warning and triggers one
// permissive retry; err is non-nil only when the retry also fails.
func AttemptEncode(ctx context.Context, store Store, path string, img image.Image) (warning, err error) {
	first := store.Write(ctx, path, img, true)
	if first == nil {
		return nil, nil
	}
	if retryErr := store.Write(ctx, path, img, false); retryErr != nil {
		return first, retryErr
	}
	return first, nil
}
