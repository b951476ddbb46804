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
	"fmt"
	"os"

	"github.com/penny-vault/pvmetrics/common"
	"github.com/penny-vault/pvmetrics/metrics"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Input
	viper.BindEnv("input.column", "PVMETRICS_COLUMN")
	rootCmd.PersistentFlags().String("column", "", "Column holding the algorithm returns (default: first non-benchmark column)")
	viper.BindPFlag("input.column", rootCmd.PersistentFlags().Lookup("column"))

	viper.BindEnv("input.benchmark", "PVMETRICS_BENCHMARK")
	rootCmd.PersistentFlags().String("benchmark", "", "Column holding the benchmark returns")
	viper.BindPFlag("input.benchmark", rootCmd.PersistentFlags().Lookup("benchmark"))

	viper.BindEnv("input.benchmark_file", "PVMETRICS_BENCHMARK_FILE")
	rootCmd.PersistentFlags().String("benchmark-file", "", "Read the benchmark from a separate CSV file")
	viper.BindPFlag("input.benchmark_file", rootCmd.PersistentFlags().Lookup("benchmark-file"))

	viper.BindEnv("input.prices", "PVMETRICS_PRICES")
	rootCmd.PersistentFlags().Bool("prices", false, "Input columns are prices rather than returns")
	viper.BindPFlag("input.prices", rootCmd.PersistentFlags().Lookup("prices"))

	viper.BindEnv("input.date_layout", "PVMETRICS_DATE_LAYOUT")
	rootCmd.PersistentFlags().String("date-layout", "2006-01-02", "Go time layout of the date column")
	viper.BindPFlag("input.date_layout", rootCmd.PersistentFlags().Lookup("date-layout"))

	// Metrics
	viper.BindEnv("metrics.confidence_level", "PVMETRICS_CONFIDENCE_LEVEL")
	rootCmd.PersistentFlags().Float64("confidence-level", metrics.DefaultConfidenceLevel, "Confidence level of the value at risk")
	viper.BindPFlag("metrics.confidence_level", rootCmd.PersistentFlags().Lookup("confidence-level"))

	viper.BindEnv("metrics.risk_free_rate", "PVMETRICS_RISK_FREE_RATE")
	rootCmd.PersistentFlags().Float64("risk-free-rate", metrics.DefaultRiskFreeRate, "Periodic risk free rate used by the sharpe and sortino ratios")
	viper.BindPFlag("metrics.risk_free_rate", rootCmd.PersistentFlags().Lookup("risk-free-rate"))

	// Logging configuration
	viper.BindEnv("log.level", "PVMETRICS_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "PVMETRICS_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "PVMETRICS_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "PVMETRICS_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", true, "Human readable log output")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:     common.ProgramName,
	Version: common.CurrentVersion.String(),
	Short:   "Risk and performance metrics for periodic return series",
	Long: `Compute cumulative returns, value at risk, draw downs, and the sharpe and sortino
ratios of a return series stored in a CSV file, and plot its cumulative returns against
an optional benchmark.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
