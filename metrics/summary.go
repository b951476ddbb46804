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
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/penny-vault/pvmetrics/dataframe"
)

var (
	ErrInvalidConfidenceLevel = errors.New("confidence level must be in the open interval (0, 1)")
)

// Config holds the parameters shared by the metric functions
type Config struct {
	ConfidenceLevel float64
	RiskFreeRate    float64
}

// DefaultConfig returns a config with a 95% confidence level and a risk free rate of 0
func DefaultConfig() Config {
	return Config{
		ConfidenceLevel: DefaultConfidenceLevel,
		RiskFreeRate:    DefaultRiskFreeRate,
	}
}

// Validate checks that the confidence level lies in (0, 1)
func (cfg Config) Validate() error {
	if math.IsNaN(cfg.ConfidenceLevel) || cfg.ConfidenceLevel <= 0 || cfg.ConfidenceLevel >= 1 {
		return ErrInvalidConfidenceLevel
	}
	return nil
}

// Value is a float64 that encodes non-finite numbers as JSON null
type Value float64

func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Summary collects every scalar metric for a single return series
type Summary struct {
	Name             string    `json:"name"`
	Periods          int       `json:"periods"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	ConfidenceLevel  float64   `json:"confidenceLevel"`
	RiskFreeRate     float64   `json:"riskFreeRate"`
	CumulativeReturn Value     `json:"cumulativeReturn"`
	ValueAtRisk      Value     `json:"valueAtRisk"`
	MaxDrawDown      Value     `json:"maxDrawDown"`
	SharpeRatio      Value     `json:"sharpeRatio"`
	SortinoRatio     Value     `json:"sortinoRatio"`
}

// Summarize computes the summary of a single return series
func Summarize(name string, returns []float64, cfg Config) *Summary {
	summary := &Summary{
		Name:             name,
		Periods:          len(returns),
		ConfidenceLevel:  cfg.ConfidenceLevel,
		RiskFreeRate:     cfg.RiskFreeRate,
		CumulativeReturn: Value(math.NaN()),
		ValueAtRisk:      Value(ValueAtRisk(returns, cfg.ConfidenceLevel)),
		MaxDrawDown:      Value(MaxDrawdown(returns)),
		SharpeRatio:      Value(SharpeRatio(returns, cfg.RiskFreeRate)),
		SortinoRatio:     Value(SortinoRatio(returns, cfg.RiskFreeRate)),
	}

	if cum := CumulativeReturns(returns); len(cum) > 0 {
		summary.CumulativeReturn = Value(cum[len(cum)-1] - 1)
	}

	return summary
}

// SummarizeFrame computes a summary for each requested column of df. If no columns are
// given every column is summarized.
func SummarizeFrame(df *dataframe.DataFrame[time.Time], cfg Config, columns ...string) ([]*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		columns = df.ColNames
	}

	summaries := make([]*Summary, 0, len(columns))
	for _, colName := range columns {
		col, err := df.Column(colName)
		if err != nil {
			return nil, err
		}

		summary := Summarize(colName, col, cfg)
		summary.Start = df.Start()
		summary.End = df.End()
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// DrawdownFrame computes the draw down of every column in df
func DrawdownFrame[T dataframe.IndexType](df *dataframe.DataFrame[T]) *dataframe.DataFrame[T] {
	cum := df.AddScalar(1).CumProd()
	runningMax := cum.CumMax()
	return cum.Sub(runningMax).Div(runningMax)
}
