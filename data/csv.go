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

package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/penny-vault/pvmetrics/dataframe"
	"github.com/rs/zerolog/log"
)

const DefaultDateLayout = "2006-01-02"

type readConfig struct {
	dateLayout string
	prices     bool
	columns    []string
}

// ReadOption customizes how ReadCSV interprets its input
type ReadOption func(*readConfig)

// DateLayout sets the time.Parse layout of the date column
func DateLayout(layout string) ReadOption {
	return func(cfg *readConfig) {
		cfg.dateLayout = layout
	}
}

// Prices treats every value column as a price series and converts it to periodic returns.
// The first row is dropped since it has no prior price.
func Prices() ReadOption {
	return func(cfg *readConfig) {
		cfg.prices = true
	}
}

// Columns restricts the result to the named value columns
func Columns(names ...string) ReadOption {
	return func(cfg *readConfig) {
		cfg.columns = append(cfg.columns, names...)
	}
}

// ReadFile opens fn and parses it with ReadCSV
func ReadFile(fn string, opts ...ReadOption) (*dataframe.DataFrame[time.Time], error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	df, err := ReadCSV(fh, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return df, nil
}

// ReadCSV parses a return series table. The first row is a header; the first column holds
// the date of each period and every other column a series of returns (or prices, see
// Prices). Empty cells are read as NaN.
func ReadCSV(r io.Reader, opts ...ReadOption) (*dataframe.DataFrame[time.Time], error) {
	cfg := &readConfig{
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	if len(header) < 2 {
		return nil, ErrNoValueColumns
	}

	df := &dataframe.DataFrame[time.Time]{
		Index:    []time.Time{},
		ColNames: make([]string, len(header)-1),
		Vals:     make([][]float64, len(header)-1),
	}

	for idx, colName := range header[1:] {
		df.ColNames[idx] = strings.TrimSpace(colName)
		df.Vals[idx] = []float64{}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)

		dt, err := time.Parse(cfg.dateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%w on line %d: %q", ErrInvalidDate, line, record[0])
		}
		df.Index = append(df.Index, dt)

		for colIdx, cell := range record[1:] {
			val, err := parseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("%w on line %d column %s: %q", ErrInvalidValue, line, df.ColNames[colIdx], cell)
			}
			df.Vals[colIdx] = append(df.Vals[colIdx], val)
		}
	}

	log.Debug().Int("NumRows", df.Len()).Strs("Columns", df.ColNames).Msg("read csv")

	if len(cfg.columns) > 0 {
		for _, colName := range cfg.columns {
			if df.ColIndex(colName) == -1 {
				return nil, fmt.Errorf("%w: %s", dataframe.ErrColumnNotFound, colName)
			}
		}
		df, _ = df.Split(cfg.columns...)
	}

	if cfg.prices {
		df = ToReturns(df)
	}

	return df, nil
}

// ToReturns converts a dataframe of prices into periodic returns, dropping the first row.
// Prices are put in date order first so each return is taken against the previous period.
func ToReturns(df *dataframe.DataFrame[time.Time]) *dataframe.DataFrame[time.Time] {
	if df.Len() == 0 {
		return df
	}

	if !df.IsSorted() {
		log.Warn().Int("NumRows", df.Len()).Msg("price index is not sorted; sorting before computing returns")
		df = df.SortIndex()
	}

	rets := df.PctChange()
	rets.Index = rets.Index[1:]
	for colIdx := range rets.Vals {
		rets.Vals[colIdx] = rets.Vals[colIdx][1:]
	}
	return rets
}

func parseValue(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
