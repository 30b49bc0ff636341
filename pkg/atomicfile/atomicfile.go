// Copyright 2015 Google Inc.
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

// Package atomicfile writes a file's new contents to a temporary sibling
// and renames it into place, so that a concurrent reader never observes a
// partially written file (spec.md §6).
package atomicfile

import (
	"os"
	"path/filepath"
)

// File is a temporary file being written in place of an eventual
// destination. Callers must call exactly one of Commit or Cancel.
type File struct {
	dest string
	tmp  *os.File
	done bool
}

// Create opens a temporary file in the same directory as dest (so the
// final rename is on the same filesystem and therefore atomic), preserving
// dest's existing permissions if it already exists, or using 0644
// otherwise.
func Create(dest string) (*File, error) {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(dest); err == nil {
		mode = fi.Mode().Perm()
	}
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return nil, err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return &File{dest: dest, tmp: tmp}, nil
}

// Write implements io.Writer against the temporary file.
func (f *File) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit flushes and closes the temporary file and renames it onto dest.
func (f *File) Commit() error {
	if f.done {
		return nil
	}
	f.done = true
	if err := f.tmp.Sync(); err != nil {
		f.tmp.Close()
		os.Remove(f.tmp.Name())
		return err
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.dest)
}

// Cancel discards the temporary file without touching dest. It is a no-op
// after Commit or a prior Cancel.
func (f *File) Cancel() {
	if f.done {
		return
	}
	f.done = true
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}
