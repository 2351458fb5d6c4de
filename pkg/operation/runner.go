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

// Package operation contains the sequential batch driver and the
// strict-then-permissive conversion retry policy.
package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pyxelate/pkg/config"
	"github.com/walteh/pyxelate/pkg/imageio"
	"github.com/walteh/pyxelate/pkg/log"
	"github.com/walteh/pyxelate/pkg/resolve"
	"github.com/walteh/pyxelate/pkg/status"
)

// timingWindowSize bounds the rolling average used for the remaining-time
// projection.
const timingWindowSize = 10

// 🛑 ErrCancelled is returned when the user interrupts the batch. It is a
// deliberate stop, not a failure; callers map it to a zero exit status.
var ErrCancelled = errors.New("cancelled")

// 🚫 ErrNoFiles is returned when resolution produced zero usable tasks.
var ErrNoFiles = errors.New("no relevant files found")

// ⚙️ Options wires the batch runner's collaborators
type Options struct {
	Config    *config.Config
	Converter Converter
	Store     Store
	Resolver  *resolve.Resolver
	Logger    *log.Logger
}

// 🏃 Runner drives the sequential batch: resolve once, then per file decode,
// convert through the retry policy, upscale, encode, and report every state
// transition to the renderer.
type Runner struct {
	cfg      *config.Config
	conv     Converter
	store    Store
	resolver *resolve.Resolver
	logger   *log.Logger

	counters *status.Counters
	window   *status.Window
	renderer *status.Renderer
}

// 🏗️ NewRunner creates a Runner. The counters and timing window are owned
// here and shared read-only with the renderer.
func NewRunner(opts Options) *Runner {
	counters := &status.Counters{}
	window := status.NewWindow(timingWindowSize)
	return &Runner{
		cfg:      opts.Config,
		conv:     opts.Converter,
		store:    opts.Store,
		resolver: opts.Resolver,
		logger:   opts.Logger,
		counters: counters,
		window:   window,
		renderer: status.NewRenderer(opts.Logger.Console(), counters, window, opts.Config.Warnings),
	}
}

// State exposes the run counters for read-only inspection after (or during)
// a run.
func (r *Runner) State() *status.Counters {
	return r.counters
}

// Run executes the whole batch. Per-file failures are absorbed here and
// never abort the run; only an unusable input path (resolve error, zero
// tasks) or an output-directory failure is fatal.
func (r *Runner) Run(ctx context.Context) error {
	tasks, err := r.resolver.Resolve(r.cfg.Input)
	if err != nil {
		return err
	}
	r.counters.Total = len(tasks)
	r.counters.Excluded = r.resolver.Excluded
	r.logger.Debug().Int("tasks", len(tasks)).Int("excluded", r.resolver.Excluded).Msg("resolved input path")

	if len(tasks) == 0 {
		r.logger.Printf("%s relevant files found", status.StyleError.Sprint(0))
		return ErrNoFiles
	}
	r.logger.Printf("%s relevant files found | %s excluded",
		status.StyleSuccess.Sprint(len(tasks)), status.StyleError.Sprint(r.resolver.Excluded))
	r.logger.Printf("Writing files to   %s", formatLocation(r.cfg.Output))
	r.logger.Printf("Reading files from %s", formatLocation(r.cfg.Input))

	if err := os.MkdirAll(r.cfg.Output, 0o755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}

	// Previous iteration's duration; nil on the first iteration and after
	// a skipped or failed file.
	var prevElapsed *time.Duration

	for _, task := range tasks {
		if prevElapsed != nil {
			r.window.Push(*prevElapsed)
			prevElapsed = nil
		}
		start := time.Now()
		dir, name := task.DisplayName()

		img, err := r.store.Read(task.SourcePath)
		if err != nil {
			if errors.Is(err, imageio.ErrUnsupported) {
				r.renderer.Logf("\tSkipping %s:\t%s%s.%s",
					status.StyleError.Sprint("unsupported"),
					status.StyleDim.Sprint(dir), task.Base, status.StyleError.Sprint(task.Ext))
				continue
			}
			r.counters.Errors++
			r.logIssue(status.StyleError, "Error", err, task)
			continue
		}

		r.renderer.Logf("\tProcessing image:\t%s%s", status.StyleDim.Sprint(dir), name)

		if ctx.Err() != nil {
			return r.cancel()
		}
		outcome := Attempt(ctx, r.conv, img)
		if ctx.Err() != nil {
			return r.cancel()
		}
		switch outcome.Kind {
		case Fatal:
			r.counters.Errors++
			r.logIssue(status.StyleError, "Error", outcome.Err, task)
			continue
		case Degraded:
			r.counters.Warnings++
			if r.cfg.Warnings {
				r.logIssue(status.StyleWarning, "Warning", outcome.Warning, task)
			}
		}

		result := outcome.Image
		if r.cfg.Scaling > 1 {
			b := result.Bounds()
			result = r.store.Scale(result, b.Dx()*r.cfg.Scaling, b.Dy()*r.cfg.Scaling)
		}

		warning, err := AttemptEncode(ctx, r.store, task.OutputPath, result)
		if ctx.Err() != nil {
			return r.cancel()
		}
		if warning != nil {
			r.counters.Warnings++
			if r.cfg.Warnings {
				r.logIssue(status.StyleWarning, "Warning", warning, task)
			}
		}
		if err != nil {
			r.counters.Errors++
			r.logIssue(status.StyleError, "Error", err, task)
			continue
		}

		elapsed := time.Since(start)
		prevElapsed = &elapsed
		r.counters.Completed++
		r.logger.Debug().Str("file", task.SourcePath).Dur("elapsed", elapsed).Msg("image completed")
		r.renderer.Redraw(false)
	}

	r.renderer.Redraw(true)
	return nil
}

// cancel renders the interruption notice and the final collapsed status line.
func (r *Runner) cancel() error {
	r.renderer.Finalf("Cancelled with %s", status.StyleError.Sprint("Ctrl+C"))
	return ErrCancelled
}

// logIssue prints one interleaved message above the bar for a recoverable
// condition. Messages are trimmed of path artifacts and capitalized; no raw
// diagnostics or stack traces reach the console.
func (r *Runner) logIssue(style status.Style, label string, err error, task resolve.Task) {
	r.logger.Debug().Err(err).Str("file", task.SourcePath).Msg(strings.ToLower(label))
	r.renderer.Logf("%s%s", style.Sprint("\t"+label+": "),
		cleanMessage(err.Error(), task.OutputPath, task.SourcePath))
}

// cleanMessage strips internal path artifacts from a collaborator message,
// trims it, and capitalizes the first rune for display.
func cleanMessage(msg string, artifacts ...string) string {
	for _, artifact := range artifacts {
		if artifact != "" {
			msg = strings.ReplaceAll(msg, artifact, "")
		}
	}
	msg = strings.TrimSpace(msg)
	runes := []rune(msg)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// formatLocation renders a path with its parent directory dimmed.
func formatLocation(path string) string {
	dir, base := filepath.Split(filepath.Clean(path))
	if dir == "" {
		return base
	}
	return fmt.Sprintf("%s%s", status.StyleDim.Sprint(dir), base)
}
