package report

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/roshansmehta/MLB-salary-predictor/internal/dataset"
	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// histogramColumns are the predictors worth a marginal distribution
// figure, plus the target.
var histogramColumns = []string{"AtBat", "Hits", "Years", "CHits", "Walks", "Salary"}

// SaveHistograms renders a panel of marginal histograms into
// outDir/histograms.png.
func SaveHistograms(design *dataset.DesignMatrix, y *mat.VecDense, outDir string) error {
	const perRow = 3
	rows := (len(histogramColumns) + perRow - 1) / perRow
	panel := make([][]*plot.Plot, rows)
	for r := range panel {
		panel[r] = make([]*plot.Plot, perRow)
	}

	for k, name := range histogramColumns {
		var values []float64
		if name == "Salary" {
			values = make([]float64, y.Len())
			for i := range values {
				values[i] = y.AtVec(i)
			}
		} else {
			col, err := design.Column(name)
			if err != nil {
				return err
			}
			values = col
		}

		p := plot.New()
		p.Title.Text = name
		h, err := plotter.NewHist(plotter.Values(values), 16)
		if err != nil {
			return errors.Wrapf(err, "histogram for %s", name)
		}
		p.Add(h)
		panel[k/perRow][k%perRow] = p
	}

	return savePanel(panel, filepath.Join(outDir, "histograms.png"))
}

// SaveScatter renders a scatter of one predictor against salary with
// the simple least-squares line overlaid.
func SaveScatter(design *dataset.DesignMatrix, y *mat.VecDense, column, outDir string) error {
	xs, err := design.Column(column)
	if err != nil {
		return err
	}
	pts := make(plotter.XYs, len(xs))
	ys := make([]float64, y.Len())
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = y.AtVec(i)
		ys[i] = y.AtVec(i)
	}

	p := plot.New()
	p.Title.Text = column + " vs Salary"
	p.X.Label.Text = column
	p.Y.Label.Text = "Salary (thousands)"

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "scatter plot")
	}
	sc.GlyphStyle.Radius = vg.Points(2)
	p.Add(sc)

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	fit := plotter.NewFunction(func(x float64) float64 { return alpha + beta*x })
	p.Add(fit)

	return p.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(outDir, "scatter_"+column+".png"))
}

// corrGrid adapts a correlation matrix to the heat map grid interface.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (int, int) { n := g.m.SymmetricDim(); return n, n }
func (g corrGrid) Z(c, r int) float64 {
	n := g.m.SymmetricDim()
	// Row 0 of the grid is the bottom of the figure.
	return g.m.At(n-1-r, c)
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// SaveCorrelationHeatmap renders the pairwise correlation matrix as a
// heat map into outDir/correlation.png.
func SaveCorrelationHeatmap(s *Summary, outDir string) error {
	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(corrGrid{m: s.Correlation}, pal)
	hm.Min = -1
	hm.Max = 1

	p := plot.New()
	p.Title.Text = "Correlation"
	p.Add(hm)
	p.X.Tick.Marker = nameTicks{names: s.Names, flip: false}
	p.Y.Tick.Marker = nameTicks{names: s.Names, flip: true}
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p.Save(8*vg.Inch, 7*vg.Inch, filepath.Join(outDir, "correlation.png"))
}

type nameTicks struct {
	names []string
	flip  bool
}

func (t nameTicks) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(t.names))
	for i, name := range t.names {
		label := name
		if t.flip {
			label = t.names[len(t.names)-1-i]
		}
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: label})
	}
	return ticks
}

// SaveCurve renders a validation or cross-validation curve: one score
// per candidate position, with the chosen position marked.
func SaveCurve(xs, ys []float64, best int, title, xLabel, path string, logX bool) error {
	if len(xs) != len(ys) {
		return errors.NewDimensionError("report.SaveCurve", len(xs), len(ys), 0)
	}
	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "MSE"
	if logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	line, sc, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrap(err, "curve plot")
	}
	p.Add(line, sc)

	if best >= 0 && best < len(pts) {
		mark, err := plotter.NewScatter(plotter.XYs{pts[best]})
		if err != nil {
			return errors.Wrap(err, "curve marker")
		}
		mark.GlyphStyle.Radius = vg.Points(4)
		mark.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(mark)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func savePanel(panel [][]*plot.Plot, path string) error {
	const cell = 3 * vg.Inch
	rows := len(panel)
	cols := len(panel[0])

	img := vgimg.New(vg.Length(cols)*cell, vg.Length(rows)*cell)
	dc := draw.New(img)
	canvases := plot.Align(panel, draw.Tiles{Rows: rows, Cols: cols}, dc)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if panel[r][c] != nil {
				panel[r][c].Draw(canvases[r][c])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating figure file")
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return errors.Wrap(err, "writing figure")
	}
	return nil
}
