package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the raw cell values of the first sheet so dates and
// times arrive as Excel serial numbers rather than locale-formatted text.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

type excelCells struct{}

func (excelCells) date(v string) string {
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format(domain.DateLayout)
}

// Whole numbers 0-23 are hours; other numbers carry the time of day in their
// fractional part.
func (excelCells) time(v string) string {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	if n == math.Trunc(n) && n >= 0 && n < 24 {
		return fmt.Sprintf("%02d:00", int(n))
	}
	_, frac := math.Modf(n)
	minutes := int(math.Round(frac*24*60)) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
