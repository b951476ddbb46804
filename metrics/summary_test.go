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

package metrics_test

import (
	"errors"
	"math"
	"time"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvmetrics/dataframe"
	"github.com/penny-vault/pvmetrics/metrics"
)

var _ = Describe("Summary", func() {
	var (
		df *dataframe.DataFrame[time.Time]
	)

	BeforeEach(func() {
		dates := make([]time.Time, 5)
		for idx := range dates {
			dates[idx] = time.Date(2022, 3, 1+idx, 0, 0, 0, 0, time.UTC)
		}
		df = &dataframe.DataFrame[time.Time]{
			Index:    dates,
			ColNames: []string{"ALGORITHM", "BENCHMARK"},
			Vals: [][]float64{
				{0.01, 0.02, -0.05, 0.03, -0.01},
				{0.01, 0.01, 0.01, 0.01, 0.01},
			},
		}
	})

	It("summarizes every column", func() {
		summaries, err := metrics.SummarizeFrame(df, metrics.DefaultConfig())
		Expect(err).To(BeNil())
		Expect(summaries).To(HaveLen(2))

		algo := summaries[0]
		Expect(algo.Name).To(Equal("ALGORITHM"))
		Expect(algo.Periods).To(Equal(5))
		Expect(algo.Start).To(Equal(df.Index[0]))
		Expect(algo.End).To(Equal(df.Index[4]))
		Expect(float64(algo.ValueAtRisk)).To(BeNumerically("~", -0.042, 1e-12))
		Expect(float64(algo.MaxDrawDown)).To(BeNumerically("~", -0.05))
		Expect(float64(algo.CumulativeReturn)).To(BeNumerically("~", -0.002029807, 1e-9))
	})

	It("summarizes selected columns", func() {
		summaries, err := metrics.SummarizeFrame(df, metrics.DefaultConfig(), "BENCHMARK")
		Expect(err).To(BeNil())
		Expect(summaries).To(HaveLen(1))
		Expect(math.IsNaN(float64(summaries[0].SortinoRatio))).To(BeTrue())
	})

	It("errors on unknown columns", func() {
		_, err := metrics.SummarizeFrame(df, metrics.DefaultConfig(), "MISSING")
		Expect(errors.Is(err, dataframe.ErrColumnNotFound)).To(BeTrue())
	})

	It("rejects an invalid confidence level", func() {
		_, err := metrics.SummarizeFrame(df, metrics.Config{ConfidenceLevel: 1.0})
		Expect(errors.Is(err, metrics.ErrInvalidConfidenceLevel)).To(BeTrue())
	})

	It("serializes non-finite values as null", func() {
		summaries, err := metrics.SummarizeFrame(df, metrics.DefaultConfig(), "BENCHMARK")
		Expect(err).To(BeNil())
		buf, err := json.Marshal(summaries[0])
		Expect(err).To(BeNil())
		Expect(string(buf)).To(ContainSubstring(`"sortinoRatio":null`))
		Expect(string(buf)).To(ContainSubstring(`"maxDrawDown":0`))
	})

	It("computes the draw down of every column", func() {
		ddDf := metrics.DrawdownFrame(df)
		Expect(ddDf.ColNames).To(Equal(df.ColNames))
		for colIdx, colName := range df.ColNames {
			col, err := df.Column(colName)
			Expect(err).To(BeNil())
			expected := metrics.Drawdown(col)
			for rowIdx := range expected {
				Expect(ddDf.Vals[colIdx][rowIdx]).To(BeNumerically("~", expected[rowIdx], 1e-12))
			}
		}
	})
})
