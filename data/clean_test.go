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

package data_test

import (
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvmetrics/data"
	"github.com/penny-vault/pvmetrics/dataframe"
)

var _ = Describe("Cleanliness", func() {
	var (
		df *dataframe.DataFrame[time.Time]
	)

	BeforeEach(func() {
		df = &dataframe.DataFrame[time.Time]{
			ColNames: []string{"ALGORITHM"},
			Index: []time.Time{
				time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 6, 0, 0, 0, 0, time.UTC),
			},
			Vals: [][]float64{{0.01, -0.02, 0.03}},
		}
	})

	It("accepts a clean series as is", func() {
		clean, err := data.CheckCleanliness(df)
		Expect(err).To(BeNil())
		Expect(clean).To(BeIdenticalTo(df))
	})

	It("rejects missing values", func() {
		df.Vals[0][1] = math.NaN()
		_, err := data.CheckCleanliness(df)
		Expect(errors.Is(err, data.ErrMissingValues)).To(BeTrue())
	})

	It("rejects duplicate dates", func() {
		df.Index[2] = df.Index[1]
		_, err := data.CheckCleanliness(df)
		Expect(errors.Is(err, data.ErrDuplicateIndex)).To(BeTrue())
	})

	It("sorts an unsorted index", func() {
		df.Index[0], df.Index[2] = df.Index[2], df.Index[0]
		clean, err := data.CheckCleanliness(df)
		Expect(err).To(BeNil())
		Expect(clean.IsSorted()).To(BeTrue())
		Expect(clean.Vals[0]).To(Equal([]float64{0.03, -0.02, 0.01}))
	})
})
