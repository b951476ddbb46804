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

// Package metrics computes risk and performance statistics of a periodic return series.
// A return series is an ordered slice of fractional returns, e.g. 0.01 is +1%.
//
// None of the ratios are annualized; the period of the returns determines the period of
// the result. Degenerate input (empty series, zero volatility) yields NaN or ±Inf rather
// than an error.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultConfidenceLevel = 0.95
	DefaultRiskFreeRate    = 0.0
)

// CumulativeReturns computes the compounded growth factor of the return series, i.e. the
// running product of (1 + r)
func CumulativeReturns(returns []float64) []float64 {
	cum := make([]float64, len(returns))
	if len(returns) == 0 {
		return cum
	}

	for idx, r := range returns {
		cum[idx] = 1 + r
	}

	return floats.CumProd(cum, cum)
}

// Percentile returns the p-th percentile (0 <= p <= 100) of x using linear interpolation
// between the two closest ranks: rank = p/100 * (n-1). This is the default method used by
// numpy and pandas. x is not modified.
//
// Returns NaN when x is empty, contains NaN, or p is out of range.
func Percentile(x []float64, p float64) float64 {
	if len(x) == 0 || math.IsNaN(p) || p < 0 || p > 100 || floats.HasNaN(x) {
		return math.NaN()
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	t := rank - float64(lo)

	a, b := sorted[lo], sorted[hi]
	diff := b - a
	if t >= 0.5 {
		return b - diff*(1-t)
	}
	return a + diff*t
}

// ValueAtRisk computes the historical VaR of the return series: the return below which the
// worst (1 - confidenceLevel) fraction of periods fall. For the default confidence level of
// 0.95 this is the 5th percentile. The result is a return fraction, typically negative.
func ValueAtRisk(returns []float64, confidenceLevel float64) float64 {
	return Percentile(returns, 100*(1-confidenceLevel))
}

// Drawdown computes the proportional decline of the cumulative return from its running
// peak for each period. Values are <= 0 and 0 at a new high.
func Drawdown(returns []float64) []float64 {
	cum := CumulativeReturns(returns)
	dd := make([]float64, len(cum))

	peak := math.Inf(-1)
	for idx, v := range cum {
		peak = math.Max(peak, v)
		dd[idx] = (v - peak) / peak
	}

	return dd
}

// MaxDrawdown returns the largest peak-to-trough decline over the whole series, i.e. the
// minimum of Drawdown. Returns NaN for an empty series.
func MaxDrawdown(returns []float64) float64 {
	dd := Drawdown(returns)
	if len(dd) == 0 {
		return math.NaN()
	}
	return floats.Min(dd)
}

// SharpeRatio computes excess mean return per unit of volatility:
//
//	(mean(returns) - riskFreeRate) / stddev(returns)
//
// The standard deviation is the sample standard deviation (n-1 denominator). A series with
// zero volatility yields ±Inf, or NaN when the excess return is also zero.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	return (stat.Mean(returns, nil) - riskFreeRate) / stat.StdDev(returns, nil)
}

// SortinoRatio computes excess mean return per unit of downside deviation:
//
//	(mean(returns) - riskFreeRate) / stddev(returns[returns < 0])
//
// Only strictly negative returns contribute to the denominator. With fewer than two
// negative returns the sample standard deviation is undefined and the result is NaN.
func SortinoRatio(returns []float64, riskFreeRate float64) float64 {
	downside := make([]float64, 0, len(returns))
	for _, r := range returns {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	return (stat.Mean(returns, nil) - riskFreeRate) / stat.StdDev(downside, nil)
}
