package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/roshansmehta/MLB-salary-predictor/internal/dataset"
)

func fixtureDesign(t *testing.T) (*dataset.DesignMatrix, *mat.VecDense) {
	t.Helper()
	records, _, err := dataset.Load(filepath.Join("..", "dataset", "testdata", "hitters_small.csv"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	records, err = dataset.WithCareerAverages(records)
	if err != nil {
		t.Fatalf("WithCareerAverages failed: %v", err)
	}
	design, y, err := dataset.Build(records)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return design, y
}

func TestSummarize(t *testing.T) {
	design, y := fixtureDesign(t)
	s, err := Summarize(design, y)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if len(s.Columns) != len(design.Columns)+1 {
		t.Fatalf("column count = %d, want %d", len(s.Columns), len(design.Columns)+1)
	}
	if s.Columns[len(s.Columns)-1].Name != "Salary" {
		t.Errorf("last column = %q, want Salary", s.Columns[len(s.Columns)-1].Name)
	}
	for _, c := range s.Columns {
		if !(c.Min <= c.Q1 && c.Q1 <= c.Median && c.Median <= c.Q3 && c.Q3 <= c.Max) {
			t.Errorf("column %s: quartiles out of order: %+v", c.Name, c)
		}
		if c.Mean < c.Min || c.Mean > c.Max {
			t.Errorf("column %s: mean %v outside [min, max]", c.Name, c.Mean)
		}
	}

	n := s.Correlation.SymmetricDim()
	if n != len(s.Names) {
		t.Fatalf("correlation dim = %d, want %d", n, len(s.Names))
	}
	for i := 0; i < n; i++ {
		if math.Abs(s.Correlation.At(i, i)-1) > 1e-9 {
			t.Errorf("diagonal correlation [%d] = %v, want 1", i, s.Correlation.At(i, i))
		}
	}
}

func TestSalaryCorrelationsSorted(t *testing.T) {
	design, y := fixtureDesign(t)
	s, err := Summarize(design, y)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	corrs := s.SalaryCorrelations()
	if len(corrs) != len(design.Columns) {
		t.Fatalf("correlation count = %d, want %d", len(corrs), len(design.Columns))
	}
	for i := 1; i < len(corrs); i++ {
		if math.Abs(corrs[i].R) > math.Abs(corrs[i-1].R)+1e-12 {
			t.Errorf("correlations not sorted by |r| at %d: %v then %v", i, corrs[i-1], corrs[i])
		}
	}
}

func TestFormat(t *testing.T) {
	design, y := fixtureDesign(t)
	s, err := Summarize(design, y)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	text := s.Format()
	if text == "" {
		t.Fatal("empty summary table")
	}
}

func TestFigures(t *testing.T) {
	design, y := fixtureDesign(t)
	s, err := Summarize(design, y)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	dir := t.TempDir()

	if err := SaveHistograms(design, y, dir); err != nil {
		t.Fatalf("SaveHistograms failed: %v", err)
	}
	if err := SaveScatter(design, y, "CHits", dir); err != nil {
		t.Fatalf("SaveScatter failed: %v", err)
	}
	if err := SaveCorrelationHeatmap(s, dir); err != nil {
		t.Fatalf("SaveCorrelationHeatmap failed: %v", err)
	}
	lambdas := []float64{100, 10, 1, 0.1}
	mses := []float64{9, 4, 2, 3}
	if err := SaveCurve(lambdas, mses, 2, "ridge", "lambda", filepath.Join(dir, "curve.png"), true); err != nil {
		t.Fatalf("SaveCurve failed: %v", err)
	}

	for _, name := range []string{"histograms.png", "scatter_CHits.png", "correlation.png", "curve.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("figure %s not written: %v", name, err)
		}
	}
}
