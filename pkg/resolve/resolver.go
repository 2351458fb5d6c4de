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

package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🚫 ErrNotImage is returned when the root path is neither a directory nor a
// file with an extension. Callers are expected to treat it as fatal for the
// whole run.
var ErrNotImage = errors.New("path points to a non-image file")

// 🖼️ Task identifies one unit of batch work. Tasks are immutable once
// returned by Resolve.
type Task struct {
	SourcePath  string // Path to the input file
	RelativeDir string // Directory relative to the resolved root, "" when directly under it
	Base        string // File name without extension
	Ext         string // Extension without the leading dot
	OutputPath  string // Destination file, always <output>/<base>.png
}

// 🧭 Resolver enumerates candidate image files under a root path
type Resolver struct {
	OutputDir string   // Directory receiving converted files
	Exclude   []string // doublestar glob patterns matched against root-relative paths

	// Excluded counts entries discarded during the last Resolve call:
	// hidden-path segments, directories, extensionless files, and
	// pattern matches.
	Excluded int
}

// Resolve returns the ordered task list for root. Directory roots are walked
// in filesystem traversal order; a single file root yields exactly one task
// with an empty RelativeDir. Any other root shape returns ErrNotImage.
func (r *Resolver) Resolve(root string) ([]Task, error) {
	r.Excluded = 0

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrNotImage, root)
	}

	if !info.IsDir() {
		if !strings.Contains(filepath.Base(root), ".") {
			return nil, errors.Errorf("%w: %s", ErrNotImage, root)
		}
		base, ext := splitName(filepath.Base(root))
		return []Task{{
			SourcePath:  root,
			RelativeDir: "",
			Base:        base,
			Ext:         ext,
			OutputPath:  r.outputPath(base),
		}}, nil
	}

	// Relative directories are computed against the cleaned root rather
	// than by string prefix stripping, so trailing slashes and "." roots
	// behave uniformly.
	cleanRoot := filepath.Clean(root)

	var tasks []Task
	err = filepath.WalkDir(cleanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %q: %w", path, err)
		}
		if path == cleanRoot {
			return nil
		}

		rel, relErr := filepath.Rel(cleanRoot, path)
		if relErr != nil {
			return errors.Errorf("relativizing %q: %w", path, relErr)
		}

		// Directories are neither tasks nor exclusions; only the files
		// inside them are accounted for.
		if d.IsDir() {
			return nil
		}
		if hasHiddenSegment(rel) {
			r.Excluded++
			return nil
		}
		if !d.Type().IsRegular() || !strings.Contains(d.Name(), ".") {
			r.Excluded++
			return nil
		}
		if r.matchesExclude(rel) {
			r.Excluded++
			return nil
		}

		relDir := filepath.Dir(rel)
		if relDir == "." {
			relDir = ""
		}
		base, ext := splitName(d.Name())
		tasks = append(tasks, Task{
			SourcePath:  path,
			RelativeDir: relDir,
			Base:        base,
			Ext:         ext,
			OutputPath:  r.outputPath(base),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// DisplayName renders the task's source as shown in log lines: the relative
// directory (with trailing separator) followed by base and extension.
func (t Task) DisplayName() (dir, name string) {
	dir = t.RelativeDir
	if dir != "" {
		dir += string(filepath.Separator)
	}
	return dir, t.Base + "." + t.Ext
}

func (r *Resolver) outputPath(base string) string {
	return filepath.Join(r.OutputDir, base+".png")
}

func (r *Resolver) matchesExclude(rel string) bool {
	for _, pattern := range r.Exclude {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// hasHiddenSegment reports whether any component of the root-relative path
// starts with a dot.
func hasHiddenSegment(rel string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// splitName splits a file name on its final dot.
func splitName(name string) (base, ext string) {
	idx := strings.LastIndex(name, ".")
	return name[:idx], name[idx+1:]
}
