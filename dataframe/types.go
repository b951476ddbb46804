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
	"errors"
	"time"
)

// IndexType is the set of types a DataFrame can be keyed by
type IndexType interface {
	time.Time | string
}

// DataFrame stores a table of values organized by an index (typically dates).
// Vals is column major - e.g.,
//
//	Index       ALGORITHM  BENCHMARK
//	2021-01-04  0.01       0.02
//	2021-01-05  -0.02      0.01
//
// Vals[0][1] = -0.02
// Vals[1][0] = 0.02
type DataFrame[T IndexType] struct {
	Index    []T
	ColNames []string
	Vals     [][]float64
}

// Map is a collection of dataframes keyed by name
type Map[T IndexType] map[string]*DataFrame[T]

var (
	ErrDateIndexNotAligned = errors.New("date index does not align")
	ErrColumnNotFound      = errors.New("column not found")
)
