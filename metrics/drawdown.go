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

package metrics

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// DrawDown is a single period in which the cumulative return falls from its previous peak.
// Begin is the date of the peak, End the date of the trough, and Recovery the first date the
// previous peak was reached again (zero if the series never recovered).
type DrawDown struct {
	Begin       time.Time `json:"begin"`
	End         time.Time `json:"end"`
	Recovery    time.Time `json:"recovery"`
	LossPercent float64   `json:"lossPercent"`
}

// Recovered reports whether the cumulative return climbed back to the previous peak
func (dd *DrawDown) Recovered() bool {
	return !dd.Recovery.IsZero()
}

// AllDrawDowns lists every draw down of the return series in chronological order. dates
// must have one entry per return. A draw down that has not recovered by the end of the
// series is included with a zero Recovery date.
func AllDrawDowns(dates []time.Time, returns []float64) []*DrawDown {
	allDrawDowns := []*DrawDown{}

	if len(dates) != len(returns) {
		log.Error().Int("NumDates", len(dates)).Int("NumReturns", len(returns)).Msg("dates and returns must be the same length")
		return allDrawDowns
	}

	if len(returns) == 0 {
		return allDrawDowns
	}

	cum := CumulativeReturns(returns)
	peak := cum[0]
	peakDate := dates[0]

	var drawDown *DrawDown
	for idx, value := range cum {
		if value < peak {
			loss := value/peak - 1.0
			if drawDown == nil {
				drawDown = &DrawDown{
					Begin:       peakDate,
					End:         dates[idx],
					LossPercent: loss,
				}
			}

			if loss < drawDown.LossPercent {
				drawDown.End = dates[idx]
				drawDown.LossPercent = loss
			}
			continue
		}

		if drawDown != nil {
			drawDown.Recovery = dates[idx]
			allDrawDowns = append(allDrawDowns, drawDown)
			drawDown = nil
		}

		peak = value
		peakDate = dates[idx]
	}

	if drawDown != nil {
		allDrawDowns = append(allDrawDowns, drawDown)
	}

	return allDrawDowns
}

// TopDrawDowns returns the n deepest draw downs ordered from largest to smallest loss
func TopDrawDowns(dates []time.Time, returns []float64, n int) []*DrawDown {
	allDrawDowns := AllDrawDowns(dates, returns)
	sort.SliceStable(allDrawDowns, func(i, j int) bool {
		return allDrawDowns[i].LossPercent < allDrawDowns[j].LossPercent
	})

	if n < 0 {
		n = 0
	}

	if len(allDrawDowns) > n {
		allDrawDowns = allDrawDowns[:n]
	}

	return allDrawDowns
}
