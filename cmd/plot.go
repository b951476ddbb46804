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
	"io"
	"os"

	"github.com/penny-vault/pvmetrics/plot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	plotFormat string
	plotOutput string
)

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVar(&plotFormat, "format", "", "Figure format: png or terminal (default: png when --output is set, otherwise terminal)")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "Write the figure to a file instead of the terminal")

	viper.BindEnv("plot.width", "PVMETRICS_PLOT_WIDTH")
	plotCmd.Flags().Float64("width", plot.DefaultWidth, "Figure width in units (100 pixels or 8 terminal columns)")
	viper.BindPFlag("plot.width", plotCmd.Flags().Lookup("width"))

	viper.BindEnv("plot.height", "PVMETRICS_PLOT_HEIGHT")
	plotCmd.Flags().Float64("height", plot.DefaultHeight, "Figure height in units (100 pixels or 4 terminal rows)")
	viper.BindPFlag("plot.height", plotCmd.Flags().Lookup("height"))

	viper.BindEnv("plot.algorithm_color", "PVMETRICS_PLOT_ALGORITHM_COLOR")
	plotCmd.Flags().String("color", "blue", "Line color of the algorithm series")
	viper.BindPFlag("plot.algorithm_color", plotCmd.Flags().Lookup("color"))
}

var plotCmd = &cobra.Command{
	Use:   "plot <returns.csv>",
	Short: "Plot the cumulative returns of the algorithm against the benchmark",
	Long: `Draw the compounded growth of the algorithm column, and of the benchmark column when one
is given. The figure is written as a PNG image with --output, or drawn on the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := loadReturns(args[0])
		if err != nil {
			log.Error().Err(err).Str("File", args[0]).Msg("could not load return series")
			return err
		}

		format := plot.Terminal
		if plotOutput != "" {
			format = plot.PNG
		}
		if plotFormat != "" {
			if format, err = plot.ParseFormat(plotFormat); err != nil {
				return err
			}
		}

		returns, err := rs.df.Column(rs.algorithm)
		if err != nil {
			return err
		}

		benchmark, err := rs.benchmarkValues()
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if plotOutput != "" {
			fh, err := os.Create(plotOutput)
			if err != nil {
				log.Error().Err(err).Str("Output", plotOutput).Msg("could not create figure file")
				return err
			}
			defer fh.Close()
			w = fh
		}

		err = plot.CumulativeReturns(w, returns, benchmark,
			plot.WithFormat(format),
			plot.Size(viper.GetFloat64("plot.width"), viper.GetFloat64("plot.height")),
			plot.AlgorithmColor(viper.GetString("plot.algorithm_color")),
			plot.Labels(rs.labels()),
		)
		if err != nil {
			log.Error().Err(err).Msg("could not render figure")
			return err
		}

		return nil
	},
}
