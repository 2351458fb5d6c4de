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

package log

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// 🎯 Logger pairs human console output with a structured zerolog sink. The
// console side carries the user-facing text; the zerolog side carries debug
// and trace events and writes to stderr so it never interleaves with the
// status bar on stdout.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
}

// 🏭 New creates a Logger writing user text to console and structured
// events through zlog.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{zlog: zlog, console: console}
}

// Printf writes one console line and mirrors it as a structured info event.
func (l *Logger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(l.console, msg)
	l.zlog.Info().Msg(msg)
}

// Debug starts a structured debug event. It never touches the console.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Console exposes the console writer for components that render directly.
func (l *Logger) Console() io.Writer {
	return l.console
}
