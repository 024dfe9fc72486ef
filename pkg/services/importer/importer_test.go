package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/services/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
)

func TestMatchHeader(t *testing.T) {
	tests := map[string]Field{
		"Date":              FieldDate,
		" 날짜 ":              FieldDate,
		"Inspection Date":   FieldDate,
		"시간":                FieldTime,
		"Vehicle Type":      FieldVehicle,
		"차종":                FieldVehicle,
		"칼라":                FieldColor,
		"부스":                FieldBooth,
		"Defect Area":       FieldDefectArea,
		"불량 부위":             FieldDefectArea,
		"불량 유형":             FieldDefectType,
		"Defect Type":       FieldDefectType,
		"재도장 여부":            FieldRepainted,
		"Repaint Status":    FieldRepainted,
		"합인 여부":             FieldAccepted,
		"Acceptance Status": FieldAccepted,
		"ID":                FieldID,
		"Inspector":         FieldNone,
		"":                  FieldNone,
	}

	for header, expected := range tests {
		t.Run(header, func(t *testing.T) {
			assert.Equal(t, expected, MatchHeader(header))
		})
	}
}

func TestParse_CSVEnglishHeaders(t *testing.T) {
	input := "\uFEFFDate,Time,Vehicle Type,Color,Booth,Defect Area,Defect Type,Repaint Status,Acceptance Status,Inspector\n" +
		"2024-03-15,08:30,K5,White,BT 1,DR_FRT_LH_DUST,DUST,Yes,Accepted,kim\n" +
		"\n" +
		"2024-03-16,14:00,EV6,Black,BT 2,,,No,Rejected,\n"

	records, err := Parse("export.csv", strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	r := records[0]
	assert.Equal(t, "2024-03-15", r.Date)
	assert.Equal(t, "08:30", r.Time)
	assert.Equal(t, "K5", r.VehicleType)
	assert.Equal(t, "White", r.Color)
	assert.Equal(t, "BT 1", r.Booth)
	assert.Equal(t, "DR_FRT_LH_DUST", r.DefectArea)
	assert.Equal(t, "DUST", r.DefectType)
	assert.Equal(t, domain.TriTrue, r.Repainted)
	assert.Equal(t, domain.TriTrue, r.Accepted)
	assert.Equal(t, map[string]string{"Inspector": "kim"}, r.Extra)
	assert.NotEmpty(t, r.ID)

	assert.Equal(t, domain.TriFalse, records[1].Repainted)
	assert.Equal(t, domain.TriFalse, records[1].Accepted)
	assert.Empty(t, records[1].DefectArea)
	assert.Nil(t, records[1].Extra)
}

func TestParse_CSVKoreanHeadersInEUCKR(t *testing.T) {
	utf := "날짜,시간,차종,칼라,부스,불량 부위,불량 유형,재도장 여부,합인 여부\n" +
		"2024-03-15,09:00,쏘렌토,흰색,BT 3,HD_RR_RH_DENT,DENT,O,X\n"
	encoded, err := korean.EUCKR.NewEncoder().String(utf)
	require.NoError(t, err)

	records, err := Parse("검사.csv", strings.NewReader(encoded))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "쏘렌토", records[0].VehicleType)
	assert.Equal(t, "흰색", records[0].Color)
	assert.Equal(t, "HD_RR_RH_DENT", records[0].DefectArea)
	assert.Equal(t, domain.TriTrue, records[0].Repainted)
	assert.Equal(t, domain.TriFalse, records[0].Accepted)
}

func TestParse_IDsAreStableAndDistinct(t *testing.T) {
	input := "Date,Time,Booth\n2024-03-15,08:30,BT 1\n2024-03-15,08:30,BT 1\n"

	first, err := Parse("a.csv", strings.NewReader(input))
	require.NoError(t, err)
	second, err := Parse("b.csv", strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.NotEqual(t, first[0].ID, first[1].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[1].ID, second[1].ID)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("data.json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("data.csv", strings.NewReader("Date,Time\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		"검사 날짜", "투입 시간", "차종", "칼라", "부스", "불량 부위", "재도장 여부", "Line",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		45366, 0.34375, "K5", "Red", "BT 2", "ROOF_FRT_LH_DUST", "Y", "L2",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{
		"2024-03-16", 14, "EV6", "Blue", "BT 1", "", "N", "",
	}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	records, err := Parse("inspection.xlsx", bytes.NewReader(buf.Bytes()))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-15", records[0].Date)
	assert.Equal(t, "08:15", records[0].Time)
	assert.Equal(t, "ROOF_FRT_LH_DUST", records[0].DefectArea)
	assert.Equal(t, domain.TriTrue, records[0].Repainted)
	assert.Equal(t, map[string]string{"Line": "L2"}, records[0].Extra)

	assert.Equal(t, "2024-03-16", records[1].Date)
	assert.Equal(t, "14:00", records[1].Time)
	assert.Equal(t, domain.TriFalse, records[1].Repainted)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	ds := (&fixture.Generator{Seed: 11, Count: 40, Now: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)}).Generate()
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, ds.Records))
	records, err := Parse("fixture.csv", &buf)

	require.NoError(t, err)
	assert.Equal(t, ds.Records, records)
}
