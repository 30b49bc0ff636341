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

// Package pathsearch resolves an %include directive's file name against a
// caller-supplied search path, the way the reader locates included
// configuration files (spec.md §4.C, §7).
package pathsearch

import (
	"errors"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when name could not be located on any directory
// of the search path.
var ErrNotFound = errors.New("pathsearch: file not found")

// Open locates name, trying each directory in searchPath in order, and
// returns an open handle together with the resolved path actually opened
// (used for %include cycle detection and FileName reporting).
//
// An absolute name (leading '/') is opened directly, ignoring searchPath,
// mirroring original_source/src/pathsearch.c's t3_config_open_from_path,
// which special-cases name[0] == '/' before ever consulting path.
//
// If splitPath is true, each entry of searchPath is itself further split
// on ':' and ';', so a single Options.SearchPath element may carry a
// PATH-style list (spec.md's SplitPath option).
//
// If cleanName is true, name is rejected outright -- with ErrNotFound --
// if it contains a ".." path segment or is itself absolute, closing off
// the directory-traversal escape from a search root that CleanName is
// meant to guard against.
func Open(name string, searchPath []string, splitPath, cleanName bool) (*os.File, string, error) {
	if cleanName && (path.IsAbs(name) || containsDotDot(name)) {
		return nil, "", ErrNotFound
	}
	if path.IsAbs(name) {
		f, err := os.Open(name)
		if err != nil {
			return nil, "", err
		}
		return f, name, nil
	}

	var lastErr error = ErrNotFound
	for _, dir := range searchPath {
		dirs := []string{dir}
		if splitPath {
			dirs = strings.Split(strings.ReplaceAll(dir, ";", ":"), ":")
		}
		for _, d := range dirs {
			candidate := name
			if d != "" {
				candidate = path.Join(d, name)
			}
			f, err := os.Open(candidate)
			if err == nil {
				return f, candidate, nil
			}
			if !os.IsNotExist(err) {
				lastErr = err
			}
		}
	}
	return nil, "", lastErr
}

func containsDotDot(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
