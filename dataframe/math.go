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
	"math"

	"gonum.org/v1/gonum/floats"
)

// AddScalar adds the scalar value to all columns in dataframe df and returns a new dataframe
func (df *DataFrame[T]) AddScalar(scalar float64) *DataFrame[T] {
	df = df.Copy()

	for colIdx := range df.Vals {
		floats.AddConst(scalar, df.Vals[colIdx])
	}
	return df
}

// CumMax replaces each value with the maximum value seen so far in its column and returns a
// new dataframe. NaN values are replaced by the running maximum.
func (df *DataFrame[T]) CumMax() *DataFrame[T] {
	df = df.Copy()

	for _, col := range df.Vals {
		for rowIdx := 1; rowIdx < len(col); rowIdx++ {
			if col[rowIdx-1] > col[rowIdx] || math.IsNaN(col[rowIdx]) {
				col[rowIdx] = col[rowIdx-1]
			}
		}
	}
	return df
}

// CumProd computes the running product of each column and returns a new dataframe
func (df *DataFrame[T]) CumProd() *DataFrame[T] {
	df = df.Copy()

	for colIdx, col := range df.Vals {
		if len(col) == 0 {
			continue
		}
		df.Vals[colIdx] = floats.CumProd(col, col)
	}
	return df
}

// Div divides all columns in `df` by the corresponding column in `other` and returns a new dataframe.
// Panics if rows are not equal.
func (df *DataFrame[T]) Div(other *DataFrame[T]) *DataFrame[T] {
	df = df.Copy()

	otherMap := make(map[string]int, len(other.ColNames))
	for idx, val := range other.ColNames {
		otherMap[val] = idx
	}

	for idx, colName := range df.ColNames {
		if otherIdx, ok := otherMap[colName]; ok {
			floats.Div(df.Vals[idx], other.Vals[otherIdx])
		}
	}
	return df
}

// PctChange computes the fractional change from the previous row, e.g. converts a price series
// into a return series. The first row is NaN.
func (df *DataFrame[T]) PctChange() *DataFrame[T] {
	return df.Div(df.Lag(1)).AddScalar(-1)
}

// Sub subtracts the corresponding column in `other` from all columns in `df` and returns a new dataframe.
// Panics if rows are not equal.
func (df *DataFrame[T]) Sub(other *DataFrame[T]) *DataFrame[T] {
	df = df.Copy()

	otherMap := make(map[string]int, len(other.ColNames))
	for idx, val := range other.ColNames {
		otherMap[val] = idx
	}

	for idx, colName := range df.ColNames {
		if otherIdx, ok := otherMap[colName]; ok {
			floats.Sub(df.Vals[idx], other.Vals[otherIdx])
		}
	}
	return df
}
