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
	"strconv"
	"strings"
	"sync"

	"github.com/vicanso/go-charts/v2"
)

const pixelsPerUnit = 100

var pngColors = map[string]charts.Color{
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"blue":   {R: 31, G: 119, B: 180, A: 255},
	"green":  {R: 44, G: 160, B: 44, A: 255},
	"orange": {R: 255, G: 127, B: 14, A: 255},
	"purple": {R: 148, G: 103, B: 189, A: 255},
	"red":    {R: 214, G: 39, B: 40, A: 255},
}

var (
	themeMu sync.Mutex
	themes  = map[string]bool{}
)

// theme registers (once) a light theme whose series colors are the requested colors
func theme(colors []string) (string, error) {
	seriesColors := make([]charts.Color, len(colors))
	for idx, name := range colors {
		c, ok := pngColors[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownColor, name)
		}
		seriesColors[idx] = c
	}

	name := "pvmetrics-" + strings.Join(colors, "-")

	themeMu.Lock()
	defer themeMu.Unlock()

	if !themes[name] {
		charts.AddTheme(name, charts.ThemeOption{
			IsDarkMode:         false,
			AxisStrokeColor:    charts.Color{R: 110, G: 112, B: 121, A: 255},
			AxisSplitLineColor: charts.Color{R: 224, G: 230, B: 242, A: 255},
			BackgroundColor:    charts.Color{R: 255, G: 255, B: 255, A: 255},
			TextColor:          charts.Color{R: 70, G: 70, B: 70, A: 255},
			SeriesColors:       seriesColors,
		})
		themes[name] = true
	}

	return name, nil
}

func renderPNG(w io.Writer, fig *figure, cfg *config) error {
	themeName, err := theme(fig.colors)
	if err != nil {
		return err
	}

	xLabels := fig.labels
	if xLabels == nil {
		xLabels = make([]string, len(fig.series[0]))
		for idx := range xLabels {
			xLabels[idx] = strconv.Itoa(idx + 1)
		}
	}

	yMin, yMax := fig.bounds()
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	yMax += pad

	splitNum := 10
	if len(xLabels) <= 30 {
		splitNum = len(xLabels) / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	seriesList := charts.NewSeriesListDataFromValues(fig.series, charts.ChartTypeLine)
	for idx := range seriesList {
		seriesList[idx].Name = fig.names[idx]
	}

	// go-charts has no y-axis name, so the axis caption heads the chart
	title, subtitle := YAxisLabel, ""
	if cfg.title != "" {
		title, subtitle = cfg.title, YAxisLabel
	}

	painter, err := charts.Render(charts.ChartOption{
		SeriesList: seriesList,
		Width:      int(cfg.width * pixelsPerUnit),
		Height:     int(cfg.height * pixelsPerUnit),
	},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: splitNum}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: fig.names}),
		charts.ThemeOptionFunc(themeName),
	)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := painter.Bytes()
	if err != nil {
		return fmt.Errorf("failed to generate chart bytes: %w", err)
	}

	_, err = w.Write(buf)
	return err
}
