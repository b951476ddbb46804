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

// Package plot renders the cumulative returns of an algorithm against an optional benchmark.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/penny-vault/pvmetrics/metrics"
	"github.com/rs/zerolog/log"
)

const (
	AlgorithmLabel = "Algorithm"
	BenchmarkLabel = "Benchmark"
	YAxisLabel     = "Cumulative returns"

	DefaultWidth  = 10.0
	DefaultHeight = 6.0
)

var (
	ErrEmptySeries    = errors.New("return series is empty")
	ErrLengthMismatch = errors.New("benchmark must have the same number of periods as returns")
	ErrUnknownColor   = errors.New("unknown color")
	ErrUnknownFormat  = errors.New("unknown plot format")
	ErrNonFiniteValue = errors.New("cumulative returns contain a NaN or infinite value")
)

// Format selects the renderer used to draw the figure
type Format string

const (
	PNG      Format = "png"
	Terminal Format = "terminal"
)

// ParseFormat converts a format name (e.g. from a command line flag) to a Format
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case PNG:
		return PNG, nil
	case Terminal:
		return Terminal, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

type config struct {
	format         Format
	width          float64
	height         float64
	algorithmColor string
	labels         []string
	title          string
}

// Option customizes a figure
type Option func(*config)

// WithFormat selects the renderer; the default is Terminal
func WithFormat(format Format) Option {
	return func(cfg *config) {
		cfg.format = format
	}
}

// Size sets the figure size in units. A unit is 100 pixels for PNG output, and 8 columns by
// 4 rows on a terminal.
func Size(width, height float64) Option {
	return func(cfg *config) {
		cfg.width = width
		cfg.height = height
	}
}

// AlgorithmColor sets the line color of the algorithm series by name
func AlgorithmColor(name string) Option {
	return func(cfg *config) {
		cfg.algorithmColor = strings.ToLower(name)
	}
}

// Labels sets the x-axis label of each period, typically the formatted date
func Labels(labels []string) Option {
	return func(cfg *config) {
		cfg.labels = labels
	}
}

// Title sets the figure title
func Title(title string) Option {
	return func(cfg *config) {
		cfg.title = title
	}
}

// CumulativeReturns draws the compounded growth of returns, and of benchmark if it is not
// nil, and writes the figure to w
func CumulativeReturns(w io.Writer, returns, benchmark []float64, opts ...Option) error {
	cfg := &config{
		format:         Terminal,
		width:          DefaultWidth,
		height:         DefaultHeight,
		algorithmColor: "blue",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(returns) == 0 {
		return ErrEmptySeries
	}

	if benchmark != nil && len(benchmark) != len(returns) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(benchmark), len(returns))
	}

	if cfg.labels != nil && len(cfg.labels) != len(returns) {
		return fmt.Errorf("%w: %d labels for %d periods", ErrLengthMismatch, len(cfg.labels), len(returns))
	}

	fig := &figure{
		names:  []string{AlgorithmLabel},
		colors: []string{cfg.algorithmColor, "red"},
		series: [][]float64{metrics.CumulativeReturns(returns)},
		labels: cfg.labels,
	}

	if benchmark != nil {
		fig.names = append(fig.names, BenchmarkLabel)
		fig.series = append(fig.series, metrics.CumulativeReturns(benchmark))
	}
	fig.colors = fig.colors[:len(fig.series)]

	if idx, period := fig.nonFinite(); idx >= 0 {
		return fmt.Errorf("%w: %s series at period %d", ErrNonFiniteValue, fig.names[idx], period+1)
	}

	log.Debug().Str("Format", string(cfg.format)).Int("Periods", len(returns)).Bool("Benchmark", benchmark != nil).Msg("rendering cumulative returns")

	switch cfg.format {
	case PNG:
		return renderPNG(w, fig, cfg)
	case Terminal:
		return renderTerminal(w, fig, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, cfg.format)
	}
}

// Show draws the figure on the terminal (stdout)
func Show(returns, benchmark []float64, opts ...Option) error {
	opts = append(opts, WithFormat(Terminal))
	return CumulativeReturns(os.Stdout, returns, benchmark, opts...)
}

type figure struct {
	names  []string
	colors []string
	series [][]float64
	labels []string
}

// nonFinite locates the first NaN or Inf value; idx is -1 when every value is finite
func (fig *figure) nonFinite() (idx, period int) {
	for idx, s := range fig.series {
		for period, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return idx, period
			}
		}
	}
	return -1, -1
}

// bounds returns the min and max value across all series
func (fig *figure) bounds() (lo, hi float64) {
	lo, hi = fig.series[0][0], fig.series[0][0]
	for _, s := range fig.series {
		for _, v := range s {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}
