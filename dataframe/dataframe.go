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

package dataframe

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// ColIndex returns the index of the specified column; returns -1 if column doesn't exist
func (df *DataFrame[T]) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame[T]) ColCount() int {
	return len(df.ColNames)
}

// Column returns a copy of the values stored in colName
func (df *DataFrame[T]) Column(colName string) ([]float64, error) {
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, colName)
	}

	col := make([]float64, len(df.Vals[colIdx]))
	copy(col, df.Vals[colIdx])
	return col, nil
}

// Copy creates a deep copy of the dataframe
func (df *DataFrame[T]) Copy() *DataFrame[T] {
	df2 := &DataFrame[T]{
		ColNames: make([]string, len(df.ColNames)),
		Index:    make([]T, len(df.Index)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Index, df.Index)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// End returns the last time in the DataFrame
func (df *DataFrame[T]) End() time.Time {
	if len(df.Index) == 0 {
		return time.Time{}
	}

	if lastDate, ok := any(df.Index[len(df.Index)-1]).(time.Time); ok {
		return lastDate
	}

	return time.Time{}
}

// Lag shifts the dataframe by the specified number of rows, replacing shifted values by math.NaN() and returns a new dataframe
func (df *DataFrame[T]) Lag(n int) *DataFrame[T] {
	df = df.Copy()
	if n <= 0 {
		return df
	}

	for idx, col := range df.Vals {
		shifted := make([]float64, len(col))
		for rowIdx := range shifted {
			if rowIdx < n {
				shifted[rowIdx] = math.NaN()
			} else {
				shifted[rowIdx] = col[rowIdx-n]
			}
		}
		df.Vals[idx] = shifted
	}
	return df
}

// Len returns the number of rows in the dataframe
func (df *DataFrame[T]) Len() int {
	return len(df.Index)
}

// IsSorted reports whether the index is in increasing order
func (df *DataFrame[T]) IsSorted() bool {
	for idx := 1; idx < len(df.Index); idx++ {
		if indexLess(df.Index[idx], df.Index[idx-1]) {
			return false
		}
	}
	return true
}

// SortIndex returns a copy of the dataframe with rows ordered by index. Rows with
// equal index values keep their relative order.
func (df *DataFrame[T]) SortIndex() *DataFrame[T] {
	order := make([]int, len(df.Index))
	for idx := range order {
		order[idx] = idx
	}

	sort.SliceStable(order, func(i, j int) bool {
		return indexLess(df.Index[order[i]], df.Index[order[j]])
	})

	sorted := &DataFrame[T]{
		ColNames: make([]string, len(df.ColNames)),
		Index:    make([]T, len(df.Index)),
		Vals:     make([][]float64, len(df.Vals)),
	}
	copy(sorted.ColNames, df.ColNames)

	for newIdx, oldIdx := range order {
		sorted.Index[newIdx] = df.Index[oldIdx]
	}

	for colIdx, col := range df.Vals {
		sorted.Vals[colIdx] = make([]float64, len(col))
		for newIdx, oldIdx := range order {
			sorted.Vals[colIdx][newIdx] = col[oldIdx]
		}
	}

	return sorted
}

// Split the dataframe into 2, with columns being in the first dataframe and
// all remaining columns in the second
func (df *DataFrame[T]) Split(columns ...string) (*DataFrame[T], *DataFrame[T]) {
	one := &DataFrame[T]{
		Index:    df.Index,
		ColNames: []string{},
		Vals:     [][]float64{},
	}

	two := &DataFrame[T]{
		Index:    df.Index,
		ColNames: []string{},
		Vals:     [][]float64{},
	}

	colMap := make(map[string]bool, len(columns))
	for _, col := range columns {
		colMap[col] = true
	}

	for idx, col := range df.ColNames {
		if _, ok := colMap[col]; ok {
			one.ColNames = append(one.ColNames, col)
			one.Vals = append(one.Vals, df.Vals[idx])
		} else {
			two.ColNames = append(two.ColNames, col)
			two.Vals = append(two.Vals, df.Vals[idx])
		}
	}

	return one, two
}

// Start returns the first date of the dataframe
func (df *DataFrame[T]) Start() time.Time {
	if len(df.Index) == 0 {
		return time.Time{}
	}

	if firstDate, ok := any(df.Index[0]).(time.Time); ok {
		return firstDate
	}

	return time.Time{}
}

// Table returns an ASCII formatted table of the dataframe
func (df *DataFrame[T]) Table() string {
	if len(df.Index) == 0 {
		return "<NO DATA>"
	}

	tableCols := append([]string{"Index"}, df.ColNames...)

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	if len(tableCols) > 1 {
		footer := make([]string, len(tableCols))
		footer[0] = "Num Rows"
		footer[1] = fmt.Sprintf("%d", df.Len())
		table.SetFooter(footer)
	}
	table.SetBorder(false)

	for idx, rowIdx := range df.Index {
		row := make([]string, 0, len(df.Vals)+1)
		row = append(row, indexString(rowIdx))

		for _, col := range df.Vals {
			row = append(row, fmt.Sprintf("%.4f", col[idx]))
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}

// Trim the dataframe to the specified date range (inclusive)
// NOTE: If T is not time.Time then the dataframe is returned unchanged
func (df *DataFrame[T]) Trim(begin, end time.Time) *DataFrame[T] {
	df2 := &DataFrame[T]{
		ColNames: df.ColNames,
		Index:    df.Index,
		Vals:     make([][]float64, len(df.Vals)),
	}
	copy(df2.Vals, df.Vals)

	var (
		first time.Time
		last  time.Time
		ok    bool
	)

	// special case 0: requested range is invalid
	if end.Before(begin) {
		return df2.empty()
	}

	// special case 1: data frame is empty
	if df.Len() == 0 {
		return df2
	}

	// ensure that index is a date index
	if first, ok = any(df.Index[0]).(time.Time); !ok {
		return df2
	}

	last = any(df.Index[len(df.Index)-1]).(time.Time)

	// special case 2: requested range does not overlap the dataframe
	if end.Before(first) || begin.After(last) {
		return df2.empty()
	}

	beginIdx := sort.Search(len(df.Index), func(i int) bool {
		return !any(df.Index[i]).(time.Time).Before(begin)
	})

	endIdx := sort.Search(len(df.Index), func(i int) bool {
		return any(df.Index[i]).(time.Time).After(end)
	})

	df2.Index = df.Index[beginIdx:endIdx]
	for colIdx, col := range df.Vals {
		df2.Vals[colIdx] = col[beginIdx:endIdx]
	}

	return df2
}

func (df *DataFrame[T]) empty() *DataFrame[T] {
	df.Index = []T{}
	for colIdx := range df.Vals {
		df.Vals[colIdx] = []float64{}
	}
	return df
}

func indexLess[T IndexType](a, b T) bool {
	switch av := any(a).(type) {
	case time.Time:
		return av.Before(any(b).(time.Time))
	case string:
		return av < any(b).(string)
	}
	return false
}

func indexString[T IndexType](idx T) string {
	switch v := any(idx).(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case string:
		return v
	}
	return ""
}
