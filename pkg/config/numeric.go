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

package config

import (
	"math"
	"strconv"
)

// f64bits exposes math.Float64bits under a short local name; numeric
// equality in this package is always bit-pattern equality (see equal.go),
// never IEEE == semantics, so that NaN round-trips compare equal to
// themselves.
func f64bits(f float64) uint64 { return math.Float64bits(f) }

// parseLocaleIndependentFloat parses s as a float64. Go's strconv.ParseFloat
// is already locale-independent (it always expects '.' as the decimal
// separator and never consults the host locale), so unlike the original C
// library this needs no scoped LC_NUMERIC switch or textual decimal-point
// substitution; it exists as a named seam so callers never reach for a
// locale-sensitive parse by accident.
func parseLocaleIndependentFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
