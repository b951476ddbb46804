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
	"github.com/rs/zerolog"
)

func (dd *DrawDown) MarshalZerologObject(e *zerolog.Event) {
	e.Time("Begin", dd.Begin).Time("End", dd.End).Time("Recovery", dd.Recovery).Float64("LossPercent", dd.LossPercent)
}

func (summary *Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Name", summary.Name)
	e.Int("Periods", summary.Periods)
	e.Float64("ConfidenceLevel", summary.ConfidenceLevel)
	e.Float64("RiskFreeRate", summary.RiskFreeRate)
	e.Float64("CumulativeReturn", float64(summary.CumulativeReturn))
	e.Float64("ValueAtRisk", float64(summary.ValueAtRisk))
	e.Float64("MaxDrawDown", float64(summary.MaxDrawDown))
	e.Float64("SharpeRatio", float64(summary.SharpeRatio))
	e.Float64("SortinoRatio", float64(summary.SortinoRatio))
}
