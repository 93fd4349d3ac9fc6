package dataset

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// nameColumn labels the optional player-name column.
const nameColumn = "Player"

var numericColumns = []string{
	"AtBat", "Hits", "HmRun", "Runs", "RBI", "Walks", "Years",
	"CAtBat", "CHits", "CHmRun", "CRuns", "CRBI", "CWalks",
	"PutOuts", "Assists", "Errors", "Salary",
}

var factorColumns = []string{"League", "Division", "NewLeague"}

// LoadReport summarizes cleaning: rows read from the source and rows
// kept after dropping records with any missing or unusable field.
type LoadReport struct {
	RowsRead    int
	RowsKept    int
	RowsDropped int
}

// Load reads and cleans the dataset at path. A missing file is fatal;
// so is a table that cleans down to zero records.
func Load(path string) ([]Record, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, errors.Wrapf(err, "opening dataset %s", path)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads and cleans a CSV dataset from r. Rows with any
// missing field are dropped whole; no imputation. The three nominal
// columns parse strictly to their two-level factors.
func LoadReader(r io.Reader) ([]Record, LoadReport, error) {
	types := make(map[string]series.Type, len(numericColumns)+len(factorColumns))
	for _, c := range numericColumns {
		types[c] = series.Float
	}
	for _, c := range factorColumns {
		types[c] = series.String
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(types),
		dataframe.NaNValues([]string{"NA", "N/A", ""}),
	)
	if df.Err != nil {
		return nil, LoadReport{}, errors.Wrap(df.Err, "reading dataset CSV")
	}

	present := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, c := range numericColumns {
		if !present[c] {
			return nil, LoadReport{}, errors.NewValueError("dataset.Load", "missing required column "+c)
		}
	}
	for _, c := range factorColumns {
		if !present[c] {
			return nil, LoadReport{}, errors.NewValueError("dataset.Load", "missing required column "+c)
		}
	}

	report := LoadReport{RowsRead: df.Nrow()}
	records := make([]Record, 0, df.Nrow())

rows:
	for i := 0; i < df.Nrow(); i++ {
		nums := make(map[string]float64, len(numericColumns))
		for _, c := range numericColumns {
			elem := df.Col(c).Elem(i)
			if elem.IsNA() {
				report.RowsDropped++
				continue rows
			}
			nums[c] = elem.Float()
		}
		// Salary must be present and positive for a usable record.
		if nums["Salary"] <= 0 {
			report.RowsDropped++
			continue rows
		}

		var rec Record
		for _, c := range factorColumns {
			elem := df.Col(c).Elem(i)
			if elem.IsNA() {
				report.RowsDropped++
				continue rows
			}
			switch c {
			case "League":
				lg, err := ParseLeague(elem.String())
				if err != nil {
					return nil, report, err
				}
				rec.League = lg
			case "Division":
				dv, err := ParseDivision(elem.String())
				if err != nil {
					return nil, report, err
				}
				rec.Division = dv
			case "NewLeague":
				lg, err := ParseLeague(elem.String())
				if err != nil {
					return nil, report, err
				}
				rec.NewLeague = lg
			}
		}

		if present[nameColumn] {
			rec.Name = df.Col(nameColumn).Elem(i).String()
		}
		rec.AtBat = int(nums["AtBat"])
		rec.Hits = int(nums["Hits"])
		rec.HmRun = int(nums["HmRun"])
		rec.Runs = int(nums["Runs"])
		rec.RBI = int(nums["RBI"])
		rec.Walks = int(nums["Walks"])
		rec.Years = int(nums["Years"])
		rec.CAtBat = int(nums["CAtBat"])
		rec.CHits = int(nums["CHits"])
		rec.CHmRun = int(nums["CHmRun"])
		rec.CRuns = int(nums["CRuns"])
		rec.CRBI = int(nums["CRBI"])
		rec.CWalks = int(nums["CWalks"])
		rec.PutOuts = int(nums["PutOuts"])
		rec.Assists = int(nums["Assists"])
		rec.Errors = int(nums["Errors"])
		rec.Salary = nums["Salary"]

		records = append(records, rec)
	}

	report.RowsKept = len(records)
	if report.RowsKept == 0 {
		return nil, report, errors.WithStack(errors.ErrNoRecords)
	}
	return records, report, nil
}
