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
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvmetrics/metrics"
)

var _ = Describe("Metrics", func() {
	var (
		returns []float64
	)

	Describe("when calculating cumulative returns", func() {
		It("is 1 for every period of a zero series", func() {
			cum := metrics.CumulativeReturns(make([]float64, 10))
			Expect(cum).To(HaveLen(10))
			for _, v := range cum {
				Expect(v).To(Equal(1.0))
			}
		})

		It("compounds returns", func() {
			cum := metrics.CumulativeReturns([]float64{0.1, -0.5, 1.0})
			Expect(cum[0]).To(BeNumerically("~", 1.1))
			Expect(cum[1]).To(BeNumerically("~", 0.55))
			Expect(cum[2]).To(BeNumerically("~", 1.1))
		})

		It("is empty for an empty series", func() {
			Expect(metrics.CumulativeReturns([]float64{})).To(BeEmpty())
		})

		It("does not modify the input", func() {
			returns = []float64{0.1, 0.2}
			metrics.CumulativeReturns(returns)
			Expect(returns).To(Equal([]float64{0.1, 0.2}))
		})
	})

	Describe("when calculating value at risk", func() {
		BeforeEach(func() {
			returns = []float64{0.01, 0.02, -0.05, 0.03, -0.01}
		})

		It("is the 5th percentile at 95% confidence", func() {
			v := metrics.ValueAtRisk(returns, 0.95)
			Expect(v).To(BeNumerically("~", -0.042, 1e-12))
			Expect(v).To(BeNumerically(">=", -0.05))
			Expect(v).To(BeNumerically("<=", -0.01))
		})

		It("is the 1st percentile at 99% confidence", func() {
			Expect(metrics.ValueAtRisk(returns, 0.99)).To(BeNumerically("~", -0.0484, 1e-12))
		})

		It("is the median at 50% confidence", func() {
			Expect(metrics.ValueAtRisk(returns, 0.5)).To(BeNumerically("~", 0.01, 1e-12))
		})

		It("does not sort the input", func() {
			metrics.ValueAtRisk(returns, 0.95)
			Expect(returns).To(Equal([]float64{0.01, 0.02, -0.05, 0.03, -0.01}))
		})

		It("is the only value of a single element series", func() {
			Expect(metrics.ValueAtRisk([]float64{-0.02}, 0.95)).To(Equal(-0.02))
		})

		It("is the value of an all identical series", func() {
			Expect(metrics.ValueAtRisk([]float64{0.01, 0.01, 0.01}, 0.95)).To(BeNumerically("~", 0.01, 1e-15))
		})

		It("is NaN for an empty series", func() {
			Expect(math.IsNaN(metrics.ValueAtRisk([]float64{}, 0.95))).To(BeTrue())
		})

		It("is NaN for a confidence level out of range", func() {
			Expect(math.IsNaN(metrics.ValueAtRisk(returns, 1.5))).To(BeTrue())
			Expect(math.IsNaN(metrics.ValueAtRisk(returns, -0.5))).To(BeTrue())
		})
	})

	Describe("when calculating percentiles", func() {
		DescribeTable("interpolates linearly between ranks", func(p, expected float64) {
			Expect(metrics.Percentile([]float64{4, 1, 3, 2}, p)).To(BeNumerically("~", expected, 1e-12))
		},
			Entry("minimum", 0.0, 1.0),
			Entry("maximum", 100.0, 4.0),
			Entry("median", 50.0, 2.5),
			Entry("first quartile", 25.0, 1.75),
			Entry("90th", 90.0, 3.7),
		)

		It("is NaN when the series holds a NaN", func() {
			Expect(math.IsNaN(metrics.Percentile([]float64{1, math.NaN()}, 50))).To(BeTrue())
		})
	})

	Describe("when calculating draw downs", func() {
		It("is 0 for every period of a zero series", func() {
			dd := metrics.Drawdown(make([]float64, 5))
			Expect(dd).To(Equal([]float64{0, 0, 0, 0, 0}))
			Expect(metrics.MaxDrawdown(make([]float64, 5))).To(Equal(0.0))
		})

		It("treats the first period as the initial peak", func() {
			Expect(metrics.Drawdown([]float64{-0.1, 0.0})).To(Equal([]float64{0, 0}))
		})

		It("measures decline from the running peak", func() {
			dd := metrics.Drawdown([]float64{0.1, -0.2, 0.05, 0.2, -0.1, -0.1, 0.5})
			Expect(dd).To(HaveLen(7))
			Expect(dd[0]).To(Equal(0.0))
			Expect(dd[1]).To(BeNumerically("~", -0.2))
			Expect(dd[2]).To(BeNumerically("~", -0.16))
			Expect(dd[3]).To(Equal(0.0))
			Expect(dd[4]).To(BeNumerically("~", -0.1))
			Expect(dd[5]).To(BeNumerically("~", -0.19))
			Expect(dd[6]).To(Equal(0.0))
		})

		It("is never positive and max draw down is its minimum", func() {
			series := [][]float64{
				{0.01, 0.02, -0.05, 0.03, -0.01},
				{0.1, -0.2, 0.05, 0.2, -0.1, -0.1, 0.5},
				{-0.3, -0.3, -0.3},
				{0.5, 0.5},
			}
			for _, r := range series {
				dd := metrics.Drawdown(r)
				low := 0.0
				for _, v := range dd {
					Expect(v).To(BeNumerically("<=", 0))
					low = math.Min(low, v)
				}
				Expect(metrics.MaxDrawdown(r)).To(BeNumerically("<=", 0))
				Expect(metrics.MaxDrawdown(r)).To(Equal(low))
			}
		})

		It("has the largest loss as the max draw down", func() {
			Expect(metrics.MaxDrawdown([]float64{0.01, 0.02, -0.05, 0.03, -0.01})).To(BeNumerically("~", -0.05))
		})

		It("is NaN for an empty series", func() {
			Expect(metrics.Drawdown([]float64{})).To(BeEmpty())
			Expect(math.IsNaN(metrics.MaxDrawdown([]float64{}))).To(BeTrue())
		})
	})

	Describe("when calculating the sharpe ratio", func() {
		BeforeEach(func() {
			returns = []float64{0.02, -0.01, 0.03, -0.02, 0.01}
		})

		It("uses the sample standard deviation", func() {
			Expect(metrics.SharpeRatio(returns, 0)).To(BeNumerically("~", 0.28934569330224724, 1e-9))
		})

		It("subtracts the risk free rate", func() {
			Expect(metrics.SharpeRatio(returns, 0.001)).To(BeNumerically("~", 0.24112141108520604, 1e-9))
		})

		It("is not finite when volatility is zero", func() {
			var v float64
			Expect(func() { v = metrics.SharpeRatio([]float64{0.01, 0.01, 0.01}, 0) }).NotTo(Panic())
			Expect(math.IsInf(v, 0) || math.IsNaN(v)).To(BeTrue())
		})

		It("is NaN for an empty series", func() {
			Expect(math.IsNaN(metrics.SharpeRatio([]float64{}, 0))).To(BeTrue())
		})
	})

	Describe("when calculating the sortino ratio", func() {
		BeforeEach(func() {
			returns = []float64{0.02, -0.01, 0.03, -0.02, 0.01}
		})

		It("uses the deviation of the negative returns", func() {
			Expect(metrics.SortinoRatio(returns, 0)).To(BeNumerically("~", 0.848528137423857, 1e-9))
		})

		It("subtracts the risk free rate", func() {
			Expect(metrics.SortinoRatio(returns, 0.001)).To(BeNumerically("~", 0.7071067811865476, 1e-9))
		})

		It("is NaN when no returns are negative", func() {
			var v float64
			Expect(func() { v = metrics.SortinoRatio([]float64{0.01, 0.02, 0.03}, 0) }).NotTo(Panic())
			Expect(math.IsNaN(v)).To(BeTrue())
		})

		It("is NaN when a single return is negative", func() {
			Expect(math.IsNaN(metrics.SortinoRatio([]float64{0.01, -0.02, 0.03}, 0))).To(BeTrue())
		})

		It("ignores zero returns in the downside", func() {
			withZeros := []float64{0.02, -0.01, 0, 0.03, -0.02, 0.01, 0}
			expected := (0.03 / 7) / 0.007071067811865475
			Expect(metrics.SortinoRatio(withZeros, 0)).To(BeNumerically("~", expected, 1e-9))
		})
	})

	Describe("when calling a metric twice", func() {
		It("returns identical results", func() {
			returns = []float64{0.02, -0.01, 0.03, -0.02, 0.01, -0.04}
			Expect(metrics.ValueAtRisk(returns, 0.95)).To(Equal(metrics.ValueAtRisk(returns, 0.95)))
			Expect(metrics.Drawdown(returns)).To(Equal(metrics.Drawdown(returns)))
			Expect(metrics.MaxDrawdown(returns)).To(Equal(metrics.MaxDrawdown(returns)))
			Expect(metrics.SharpeRatio(returns, 0.001)).To(Equal(metrics.SharpeRatio(returns, 0.001)))
			Expect(metrics.SortinoRatio(returns, 0.001)).To(Equal(metrics.SortinoRatio(returns, 0.001)))
			Expect(metrics.CumulativeReturns(returns)).To(Equal(metrics.CumulativeReturns(returns)))
		})
	})
})
