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
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/pvmetrics/data"
	"github.com/penny-vault/pvmetrics/metrics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var topDrawDowns int

func init() {
	rootCmd.AddCommand(drawdownCmd)

	drawdownCmd.Flags().IntVar(&topDrawDowns, "top", 0, "List the N deepest draw down episodes instead of the draw down series")
}

var drawdownCmd = &cobra.Command{
	Use:   "drawdown <returns.csv>",
	Short: "Print the draw down series or the deepest draw downs",
	Long: `Print the draw down of each period, the relative decline of the cumulative return from
its running maximum. With --top N print the N deepest draw down episodes of the algorithm
column along with their peak, trough and recovery dates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := loadReturns(args[0])
		if err != nil {
			log.Error().Err(err).Str("File", args[0]).Msg("could not load return series")
			return err
		}

		if topDrawDowns <= 0 {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), metrics.DrawdownFrame(rs.df).Table())
			return err
		}

		returns, err := rs.df.Column(rs.algorithm)
		if err != nil {
			return err
		}

		drawDowns := metrics.TopDrawDowns(rs.df.Index, returns, topDrawDowns)
		log.Info().Int("NumDrawDowns", len(drawDowns)).Str("Column", rs.algorithm).Send()
		for _, drawDown := range drawDowns {
			log.Debug().Object("DrawDown", drawDown).Send()
		}

		_, err = cmd.OutOrStdout().Write(drawDownTable(drawDowns))
		return err
	},
}

func drawDownTable(drawDowns []*metrics.DrawDown) []byte {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Peak", "Trough", "Recovery", "Loss"})

	for _, drawDown := range drawDowns {
		recovery := "-"
		if drawDown.Recovered() {
			recovery = drawDown.Recovery.Format(data.DefaultDateLayout)
		}
		table.Append([]string{
			drawDown.Begin.Format(data.DefaultDateLayout),
			drawDown.End.Format(data.DefaultDateLayout),
			recovery,
			formatValue(drawDown.LossPercent),
		})
	}

	table.Render()
	return buf.Bytes()
}
