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
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/pvmetrics/data"
	"github.com/penny-vault/pvmetrics/metrics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	ErrUnknownReportFormat = errors.New("unknown report format; expected table or json")
)

var (
	metricsFormat string
	metricsOutput string
)

func init() {
	rootCmd.AddCommand(metricsCmd)

	metricsCmd.Flags().StringVar(&metricsFormat, "format", "table", "Report format: table or json")
	metricsCmd.Flags().StringVarP(&metricsOutput, "output", "o", "", "Write the report to a file; a .lz4 suffix compresses it")
}

var metricsCmd = &cobra.Command{
	Use:   "metrics <returns.csv>",
	Short: "Summarize the risk and performance metrics of a return series",
	Long: `Compute the cumulative return, value at risk, maximum draw down, sharpe ratio and
sortino ratio of the algorithm column, and of the benchmark column when one is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := loadReturns(args[0])
		if err != nil {
			log.Error().Err(err).Str("File", args[0]).Msg("could not load return series")
			return err
		}

		summaries, err := metrics.SummarizeFrame(rs.df, metricsConfig(), rs.columns()...)
		if err != nil {
			log.Error().Err(err).Msg("could not compute metrics")
			return err
		}

		for _, summary := range summaries {
			log.Info().Object("Summary", summary).Send()
		}

		var buf []byte
		switch metricsFormat {
		case "table":
			buf = summaryTable(summaries)
		case "json":
			buf, err = json.MarshalIndent(summaries, "", "  ")
			if err != nil {
				log.Error().Err(err).Msg("could not serialize metrics")
				return err
			}
			buf = append(buf, '\n')
		default:
			return fmt.Errorf("%w: %s", ErrUnknownReportFormat, metricsFormat)
		}

		if err := writeOutput(cmd.OutOrStdout(), metricsOutput, buf); err != nil {
			log.Error().Err(err).Str("Output", metricsOutput).Msg("could not write report")
			return err
		}

		return nil
	},
}

// summaryTable renders one column per summary and one row per metric
func summaryTable(summaries []*metrics.Summary) []byte {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)

	header := []string{"Metric"}
	for _, summary := range summaries {
		header = append(header, summary.Name)
	}
	table.SetHeader(header)

	row := func(name string, value func(*metrics.Summary) string) {
		line := []string{name}
		for _, summary := range summaries {
			line = append(line, value(summary))
		}
		table.Append(line)
	}

	row("Periods", func(s *metrics.Summary) string { return strconv.Itoa(s.Periods) })
	row("Start", func(s *metrics.Summary) string { return s.Start.Format(data.DefaultDateLayout) })
	row("End", func(s *metrics.Summary) string { return s.End.Format(data.DefaultDateLayout) })
	row("Cumulative Return", func(s *metrics.Summary) string { return formatValue(float64(s.CumulativeReturn)) })
	row(fmt.Sprintf("Value at Risk (%g%%)", summaries[0].ConfidenceLevel*100), func(s *metrics.Summary) string {
		return formatValue(float64(s.ValueAtRisk))
	})
	row("Max Draw Down", func(s *metrics.Summary) string { return formatValue(float64(s.MaxDrawDown)) })
	row("Sharpe Ratio", func(s *metrics.Summary) string { return formatValue(float64(s.SharpeRatio)) })
	row("Sortino Ratio", func(s *metrics.Summary) string { return formatValue(float64(s.SortinoRatio)) })

	table.Render()
	return buf.Bytes()
}
