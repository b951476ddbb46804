// Copyright 2021-2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataframe

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Align finds the maximum start and minimum end across all dataframes and trims them to match
func (dfMap Map[T]) Align() Map[T] {
	var start time.Time
	var end time.Time

	first := true
	for _, df := range dfMap {
		if first {
			start = df.Start()
			end = df.End()
			first = false
			continue
		}

		if df.Start().After(start) {
			start = df.Start()
		}
		if df.End().Before(end) {
			end = df.End()
		}
	}

	dfMapTrimmed := make(Map[T], len(dfMap))
	for k, df := range dfMap {
		dfMapTrimmed[k] = df.Trim(start, end)
	}

	return dfMapTrimmed
}

// DataFrame merges the map into a single dataframe after aligning each item; columns are
// ordered by map key. Returns ErrDateIndexNotAligned if the indexes still differ after
// trimming, e.g. one series skips a date the other has.
func (dfMap Map[T]) DataFrame() (*DataFrame[T], error) {
	keys := make([]string, 0, len(dfMap))
	for k := range dfMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	aligned := dfMap.Align()
	df := &DataFrame[T]{}
	for idx, k := range keys {
		v := aligned[k]
		if idx == 0 {
			df.Index = v.Index
			df.ColNames = append(df.ColNames, v.ColNames...)
			df.Vals = append(df.Vals, v.Vals...)
			continue
		}

		if !sameIndex(df.Index, v.Index) {
			log.Warn().Str("Key", k).Int("LenA", len(df.Index)).Int("LenB", len(v.Index)).Msg("date indexes do not match - cannot merge into single dataframe")
			return nil, ErrDateIndexNotAligned
		}
		df.ColNames = append(df.ColNames, v.ColNames...)
		df.Vals = append(df.Vals, v.Vals...)
	}

	return df, nil
}

func sameIndex[T IndexType](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if indexLess(a[idx], b[idx]) || indexLess(b[idx], a[idx]) {
			return false
		}
	}
	return true
}
