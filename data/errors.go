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

import "errors"

var (
	ErrNoHeader       = errors.New("csv file has no header row")
	ErrNoValueColumns = errors.New("csv file must have a date column and at least one value column")
	ErrInvalidDate    = errors.New("could not parse date")
	ErrInvalidValue   = errors.New("could not parse value")
	ErrMissingValues  = errors.New("returns contain missing values")
	ErrDuplicateIndex = errors.New("returns contain duplicate index")
)
