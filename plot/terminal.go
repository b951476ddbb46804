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

package plot

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
)

const (
	columnsPerUnit = 8
	rowsPerUnit    = 4
)

var terminalColors = map[string]asciigraph.AnsiColor{
	"black":  asciigraph.Black,
	"blue":   asciigraph.Blue,
	"green":  asciigraph.Green,
	"orange": asciigraph.Orange,
	"purple": asciigraph.Purple,
	"red":    asciigraph.Red,
}

func renderTerminal(w io.Writer, fig *figure, cfg *config) error {
	colors := make([]asciigraph.AnsiColor, len(fig.colors))
	for idx, name := range fig.colors {
		c, ok := terminalColors[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownColor, name)
		}
		colors[idx] = c
	}

	caption := YAxisLabel
	if cfg.title != "" {
		caption = cfg.title + " - " + YAxisLabel
	}

	graph := asciigraph.PlotMany(fig.series,
		asciigraph.Width(int(cfg.width*columnsPerUnit)),
		asciigraph.Height(int(cfg.height*rowsPerUnit)),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(fig.names...),
	)

	_, err := fmt.Fprintln(w, graph)
	return err
}
