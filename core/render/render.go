/*
Package render draws a k-means History as an HTML page of scatter charts
(one per record) with go-echarts, so a run can be stepped through in a
browser. Clusters are colored consistently across steps, centroids are drawn
as black triangles.
*/
package render

import (
	"fmt"
	"io"
	"kstep/pkg/kmeans"
	"kstep/pkg/kmeans/common"
	"kstep/pkg/mathutils"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type Point = common.Point

// The chart area always covers at least this range on both axes.
const (
	axisMin = -10.0
	axisMax = 10.0
)

const (
	centroidColor = "#000000"
	pointColor    = "#c8c8c8"
)

// PageArgs contain arguments for Page.
type PageArgs struct {
	Title   string
	Points  []Point
	History kmeans.History
	// Tolerance used to label the last step as converged.
	Tolerance float64
}

// Palette gives n distinct colors, spreading hues by the golden angle so
// that neighbouring cluster indexes never look alike.
func Palette(n int) []string {
	res := make([]string, n)
	for i := range res {
		hue := math.Mod(float64(i)*137.508, 360)
		res[i] = fmt.Sprintf("hsl(%.1f, 85%%, 50%%)", hue)
	}
	return res
}

// axisRange gives the shared axis range: [-10, 10] unless the data reaches
// beyond it, in which case the data bounds (padded by 5%) are used.
func axisRange(points []Point) (lo, hi float64) {
	lo, hi = axisMin, axisMax
	bmin, bmax, ok := mathutils.Bounds(points)
	if !ok {
		return lo, hi
	}
	lo = math.Min(lo, math.Min(bmin[0], bmin[1]))
	hi = math.Max(hi, math.Max(bmax[0], bmax[1]))
	if lo < axisMin || hi > axisMax {
		pad := (hi - lo) * 0.05
		lo, hi = lo-pad, hi+pad
	}
	return lo, hi
}

func scatterData(points []Point, symbol string, size int) []opts.ScatterData {
	res := make([]opts.ScatterData, len(points))
	for i, p := range points {
		res[i] = opts.ScatterData{Value: []interface{}{p[0], p[1]}, Symbol: symbol, SymbolSize: size}
	}
	return res
}

func newScatter(title, subtitle string, lo, hi float64) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "640px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Min: lo, Max: hi, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: lo, Max: hi, Name: "Y", NameLocation: "middle", NameGap: 30}),
	)
	return scatter
}

func stepSubtitle(args PageArgs, i int) string {
	switch {
	case i == 0:
		return "initial assignment"
	case i == len(args.History)-1 && args.History.Converged(args.Tolerance):
		return fmt.Sprintf("iteration %d (converged)", i)
	case i == len(args.History)-1:
		return fmt.Sprintf("iteration %d (iteration cap)", i)
	default:
		return fmt.Sprintf("iteration %d", i)
	}
}

// recordChart draws one record: a series per cluster plus the centroids.
func recordChart(args PageArgs, i int, lo, hi float64, palette []string) *charts.Scatter {
	rec := args.History[i]
	scatter := newScatter(fmt.Sprintf("Step %d", i), stepSubtitle(args, i), lo, hi)
	for j, c := range rec.Clusters {
		scatter.AddSeries(fmt.Sprintf("Cluster %d", j+1), scatterData(c, "circle", 8),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette[j]}))
	}
	scatter.AddSeries("Centroids", scatterData(rec.Centroids, "triangle", 16),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: centroidColor}))
	return scatter
}

// Page renders the page for 'args' into w. With an empty History only the
// raw points are drawn.
func Page(w io.Writer, args PageArgs) error {
	if args.Tolerance <= 0 {
		args.Tolerance = kmeans.DefaultTolerance
	}
	lo, hi := axisRange(args.Points)

	page := components.NewPage()
	page.PageTitle = args.Title
	if len(args.History) == 0 {
		scatter := newScatter(args.Title, fmt.Sprintf("%d points", len(args.Points)), lo, hi)
		scatter.AddSeries("Data Points", scatterData(args.Points, "circle", 8),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: pointColor}))
		page.AddCharts(scatter)
		return page.Render(w)
	}

	first := args.History[0]
	palette := Palette(first.K())
	for i := range args.History {
		page.AddCharts(recordChart(args, i, lo, hi, palette))
	}
	return page.Render(w)
}
