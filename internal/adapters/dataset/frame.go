package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Header aliases tried in order when no explicit column is configured.
var (
	countryAliases = []string{"LOCATION", "REF_AREA", "Country", "country_code", "Code"}
	yearAliases    = []string{"TIME", "TIME_PERIOD", "Year", "year"}
	valueAliases   = []string{"Value", "OBS_VALUE", "WageGap", "wage_gap"}
)

// readFrame loads path into an all-string dataframe based on its extension.
func readFrame(path, sheet string) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path, sheet)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch len(records) {
	case 0:
		return dataframe.DataFrame{}, fmt.Errorf("%w: file is empty", ErrParse)
	case 1:
		// Header only: a valid, empty dataset.
		return stringFrame(records[0], nil)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %w", ErrParse, df.Err)
	}
	return df, nil
}

func readXLSX(path, sheet string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("%w: workbook has no sheets", ErrParse)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: sheet %q: %w", ErrParse, sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: sheet %q is empty", ErrParse, sheet)
	}

	return stringFrame(rows[0], rows[1:])
}

// stringFrame builds an all-string dataframe, padding rows shorter than headers.
func stringFrame(headers []string, rows [][]string) (dataframe.DataFrame, error) {
	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(rows))
	}
	for _, row := range rows {
		for i := range headers {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			columns[i] = append(columns[i], v)
		}
	}

	list := make([]series.Series, len(headers))
	for i, name := range headers {
		list[i] = series.New(columns[i], series.String, name)
	}
	df := dataframe.New(list...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %w", ErrParse, df.Err)
	}
	return df, nil
}

// resolveColumn returns the header matching configured, or the first alias present.
// Matching is case-insensitive.
func resolveColumn(names []string, configured string, aliases []string) (string, bool) {
	candidates := aliases
	if configured != "" {
		candidates = []string{configured}
	}
	for _, want := range candidates {
		for _, have := range names {
			// OECD exports often start with a UTF-8 BOM.
			if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(have, "\ufeff")), want) {
				return have, true
			}
		}
	}
	return "", false
}
