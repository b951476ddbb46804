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
	"io"
	"os"
	"strings"
	"time"

	"github.com/penny-vault/pvmetrics/common"
	"github.com/penny-vault/pvmetrics/data"
	"github.com/penny-vault/pvmetrics/dataframe"
	"github.com/penny-vault/pvmetrics/metrics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	ErrNoAlgorithmColumn = errors.New("no algorithm column in input")
)

// returnSeries is a cleaned return table along with the names of the columns to analyze
type returnSeries struct {
	df        *dataframe.DataFrame[time.Time]
	algorithm string
	benchmark string
}

// columns returns the algorithm column followed by the benchmark column, if any
func (rs *returnSeries) columns() []string {
	if rs.benchmark == "" {
		return []string{rs.algorithm}
	}
	return []string{rs.algorithm, rs.benchmark}
}

func (rs *returnSeries) benchmarkValues() ([]float64, error) {
	if rs.benchmark == "" {
		return nil, nil
	}
	return rs.df.Column(rs.benchmark)
}

func (rs *returnSeries) labels() []string {
	labels := make([]string, rs.df.Len())
	for idx, dt := range rs.df.Index {
		labels[idx] = dt.Format(data.DefaultDateLayout)
	}
	return labels
}

func readOptions() []data.ReadOption {
	opts := []data.ReadOption{data.DateLayout(viper.GetString("input.date_layout"))}
	if viper.GetBool("input.prices") {
		opts = append(opts, data.Prices())
	}
	return opts
}

func readClean(fn string, opts ...data.ReadOption) (*dataframe.DataFrame[time.Time], error) {
	df, err := data.ReadFile(fn, opts...)
	if err != nil {
		return nil, err
	}

	df, err = data.CheckCleanliness(df)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}

	return df, nil
}

// loadReturns reads fn, and the benchmark file if one is configured, and resolves which
// columns hold the algorithm and the benchmark
func loadReturns(fn string) (*returnSeries, error) {
	rs := &returnSeries{
		algorithm: viper.GetString("input.column"),
		benchmark: viper.GetString("input.benchmark"),
	}

	df, err := readClean(fn, readOptions()...)
	if err != nil {
		return nil, err
	}

	if benchFn := viper.GetString("input.benchmark_file"); benchFn != "" {
		opts := readOptions()
		if rs.benchmark != "" {
			opts = append(opts, data.Columns(rs.benchmark))
		}

		bench, err := readClean(benchFn, opts...)
		if err != nil {
			return nil, err
		}

		if rs.benchmark == "" {
			if bench.ColCount() == 0 {
				return nil, fmt.Errorf("%s: %w", benchFn, data.ErrNoValueColumns)
			}
			rs.benchmark = bench.ColNames[0]
		}

		if df.ColIndex(rs.benchmark) != -1 {
			df, _ = df.Split(rs.algorithmOrAll(df)...)
		}
		bench, _ = bench.Split(rs.benchmark)

		df, err = dataframe.Map[time.Time]{"algorithm": df, "benchmark": bench}.DataFrame()
		if err != nil {
			return nil, fmt.Errorf("merge %s and %s: %w", fn, benchFn, err)
		}
	}

	if rs.algorithm == "" {
		for _, colName := range df.ColNames {
			if colName != rs.benchmark {
				rs.algorithm = colName
				break
			}
		}
		if rs.algorithm == "" {
			return nil, fmt.Errorf("%s: %w", fn, ErrNoAlgorithmColumn)
		}
	}

	for _, colName := range rs.columns() {
		if df.ColIndex(colName) == -1 {
			return nil, fmt.Errorf("%s: %w: %s", fn, dataframe.ErrColumnNotFound, colName)
		}
	}

	rs.df, _ = df.Split(rs.columns()...)

	log.Debug().Str("File", fn).Str("Algorithm", rs.algorithm).Str("Benchmark", rs.benchmark).
		Int("NumRows", rs.df.Len()).Msg("loaded return series")

	return rs, nil
}

// algorithmOrAll lists the columns of df to keep when the benchmark comes from another file
func (rs *returnSeries) algorithmOrAll(df *dataframe.DataFrame[time.Time]) []string {
	if rs.algorithm != "" {
		return []string{rs.algorithm}
	}
	keep := make([]string, 0, df.ColCount())
	for _, colName := range df.ColNames {
		if colName != rs.benchmark {
			keep = append(keep, colName)
		}
	}
	return keep
}

func metricsConfig() metrics.Config {
	return metrics.Config{
		ConfidenceLevel: viper.GetFloat64("metrics.confidence_level"),
		RiskFreeRate:    viper.GetFloat64("metrics.risk_free_rate"),
	}
}

// writeOutput writes buf to fn, or to w when fn is empty. Files ending in .lz4 are
// compressed.
func writeOutput(w io.Writer, fn string, buf []byte) error {
	if fn == "" {
		_, err := io.Copy(w, bytes.NewReader(buf))
		return err
	}

	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer fh.Close()

	if strings.HasSuffix(strings.ToLower(fn), ".lz4") {
		return common.CompressTo(fh, buf)
	}

	_, err = fh.Write(buf)
	return err
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
