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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pyxelate/pkg/operation"
	"github.com/walteh/pyxelate/pkg/resolve"
	"github.com/walteh/pyxelate/pkg/status"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		// Normal completion.
	case errors.Is(err, operation.ErrCancelled):
		// A deliberate stop, not an error.
	case errors.Is(err, resolve.ErrNotImage):
		fmt.Println("Path points to " + status.StyleError.Sprint("non image") + " file.")
		os.Exit(1)
	case errors.Is(err, operation.ErrNoFiles):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, status.StyleError.Sprint("Error: ")+err.Error())
		os.Exit(1)
	}
}
