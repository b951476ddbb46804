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

package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvmetrics/common"
	"github.com/penny-vault/pvmetrics/dataframe"
	"github.com/penny-vault/pvmetrics/metrics"
	"github.com/penny-vault/pvmetrics/plot"
)

const returnsFile = "../testdata/returns.csv"

var _ = Describe("Commands", func() {
	It("describes every command", func() {
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == "help" || sub.Name() == "completion" {
				continue
			}
			Expect(sub.Short).NotTo(BeEmpty(), sub.Name())
			Expect(sub.Long).NotTo(BeEmpty(), sub.Name())
		}
	})

	Describe("version", func() {
		It("prints the program name and version", func() {
			out, err := execute("version")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(common.ProgramName + " v" + common.CurrentVersion.String()))
			Expect(out).NotTo(ContainSubstring("Dependencies"))
		})

		It("lists dependencies with --deps", func() {
			out, err := execute("version", "--deps")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Dependencies"))
		})
	})

	Describe("metrics", func() {
		It("prints a table of the algorithm and benchmark", func() {
			out, err := execute("metrics", returnsFile, "--benchmark", "BENCHMARK")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("ALGORITHM"))
			Expect(out).To(ContainSubstring("BENCHMARK"))
			Expect(out).To(ContainSubstring("Value at Risk (95%)"))
			Expect(out).To(ContainSubstring("Sharpe Ratio"))
			Expect(out).To(ContainSubstring("2021-01-04"))
		})

		It("writes json", func() {
			out, err := execute("metrics", returnsFile, "--column", "ALGORITHM", "--format", "json", "--confidence-level", "0.99")
			Expect(err).NotTo(HaveOccurred())

			var summaries []map[string]any
			Expect(json.Unmarshal([]byte(out), &summaries)).To(Succeed())
			Expect(summaries).To(HaveLen(1))
			Expect(summaries[0]["name"]).To(Equal("ALGORITHM"))
			Expect(summaries[0]["periods"]).To(BeNumerically("==", 8))
			Expect(summaries[0]["confidenceLevel"]).To(BeNumerically("~", 0.99))
			Expect(summaries[0]["maxDrawDown"]).To(BeNumerically("<", 0))
		})

		It("compresses the report when the output ends in .lz4", func() {
			fn := filepath.Join(GinkgoT().TempDir(), "report.json.lz4")
			out, err := execute("metrics", returnsFile, "--format", "json", "--output", fn)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(BeEmpty())

			compressed, err := os.ReadFile(fn)
			Expect(err).NotTo(HaveOccurred())
			raw, err := common.Decompress(compressed)
			Expect(err).NotTo(HaveOccurred())

			var summaries []*metrics.Summary
			Expect(json.Unmarshal(raw, &summaries)).To(Succeed())
			Expect(summaries).To(HaveLen(1))
			Expect(summaries[0].Name).To(Equal("ALGORITHM"))
		})

		It("merges a benchmark from a separate file", func() {
			fn := filepath.Join(GinkgoT().TempDir(), "spy.csv")
			Expect(os.WriteFile(fn, []byte(`date,SPY
2021-01-05,0.004
2021-01-06,-0.01
2021-01-07,0.012
2021-01-08,-0.003
2021-01-11,0.002
2021-01-12,-0.006
`), 0600)).To(Succeed())

			out, err := execute("metrics", returnsFile, "--column", "ALGORITHM", "--benchmark-file", fn, "--format", "json")
			Expect(err).NotTo(HaveOccurred())

			var summaries []map[string]any
			Expect(json.Unmarshal([]byte(out), &summaries)).To(Succeed())
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[0]["name"]).To(Equal("ALGORITHM"))
			Expect(summaries[1]["name"]).To(Equal("SPY"))
			Expect(summaries[1]["periods"]).To(BeNumerically("==", 6))
		})

		It("rejects an invalid confidence level", func() {
			_, err := execute("metrics", returnsFile, "--confidence-level", "1.5")
			Expect(errors.Is(err, metrics.ErrInvalidConfidenceLevel)).To(BeTrue())
		})

		It("rejects an unknown column", func() {
			_, err := execute("metrics", returnsFile, "--column", "MISSING")
			Expect(errors.Is(err, dataframe.ErrColumnNotFound)).To(BeTrue())
		})

		It("rejects an unknown format", func() {
			_, err := execute("metrics", returnsFile, "--format", "xml")
			Expect(errors.Is(err, ErrUnknownReportFormat)).To(BeTrue())
		})

		It("requires an input file", func() {
			_, err := execute("metrics")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("drawdown", func() {
		It("prints the draw down series", func() {
			out, err := execute("drawdown", returnsFile, "--benchmark", "BENCHMARK")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("ALGORITHM"))
			Expect(out).To(ContainSubstring("BENCHMARK"))
			Expect(out).To(ContainSubstring("2021-01-13"))
		})

		It("lists the deepest draw downs", func() {
			out, err := execute("drawdown", returnsFile, "--top", "2")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("PEAK"))
			Expect(out).To(ContainSubstring("2021-01-05"))
		})
	})

	Describe("plot", func() {
		It("draws on the terminal by default", func() {
			out, err := execute("plot", returnsFile, "--benchmark", "BENCHMARK")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(plot.AlgorithmLabel))
			Expect(out).To(ContainSubstring(plot.BenchmarkLabel))
		})

		It("writes a png when an output file is given", func() {
			fn := filepath.Join(GinkgoT().TempDir(), "returns.png")
			_, err := execute("plot", returnsFile, "--output", fn, "--color", "green")
			Expect(err).NotTo(HaveOccurred())

			img, err := os.ReadFile(fn)
			Expect(err).NotTo(HaveOccurred())
			Expect(img[:8]).To(Equal([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}))
		})

		It("rejects an unknown color", func() {
			_, err := execute("plot", returnsFile, "--color", "chartreuse")
			Expect(errors.Is(err, plot.ErrUnknownColor)).To(BeTrue())
		})
	})
})
