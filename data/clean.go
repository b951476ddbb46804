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

package data

import (
	"fmt"
	"math"
	"time"

	"github.com/penny-vault/pvmetrics/dataframe"
	"github.com/rs/zerolog/log"
)

// CheckCleanliness validates a return series before metrics are computed on it. Missing
// values and duplicate dates are errors; an unsorted index is sorted and the sorted copy
// returned.
func CheckCleanliness(df *dataframe.DataFrame[time.Time]) (*dataframe.DataFrame[time.Time], error) {
	for colIdx, col := range df.Vals {
		for rowIdx, val := range col {
			if math.IsNaN(val) {
				return nil, fmt.Errorf("%w: column %s on %s", ErrMissingValues, df.ColNames[colIdx], df.Index[rowIdx].Format(DefaultDateLayout))
			}
		}
	}

	seen := make(map[time.Time]bool, df.Len())
	for _, dt := range df.Index {
		if seen[dt] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIndex, dt.Format(DefaultDateLayout))
		}
		seen[dt] = true
	}

	if !df.IsSorted() {
		log.Warn().Int("NumRows", df.Len()).Msg("index is not sorted; sorting the index")
		return df.SortIndex(), nil
	}

	return df, nil
}
