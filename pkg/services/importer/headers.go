package importer

import "strings"

// Field is the inspection record attribute a column maps to.
type Field string

const (
	FieldNone       Field = ""
	FieldID         Field = "id"
	FieldDate       Field = "date"
	FieldTime       Field = "time"
	FieldVehicle    Field = "vehicle_type"
	FieldColor      Field = "color"
	FieldBooth      Field = "booth"
	FieldDefectArea Field = "defect_area"
	FieldDefectType Field = "defect_type"
	FieldRepainted  Field = "repainted"
	FieldAccepted   Field = "accepted"
)

// HeaderRule maps a column header to a Field. Aliases must equal the header;
// keywords only need to be contained in it.
type HeaderRule struct {
	Field    Field
	Aliases  []string
	Keywords []string
}

// HeaderRules are evaluated top to bottom, exact aliases before keywords.
var HeaderRules = []HeaderRule{
	{Field: FieldID, Aliases: []string{"id", "record id"}},
	{Field: FieldDate, Aliases: []string{"date", "날짜"}, Keywords: []string{"date", "날짜"}},
	{Field: FieldTime, Aliases: []string{"time", "시간"}, Keywords: []string{"time", "시간"}},
	{Field: FieldVehicle, Aliases: []string{"vehicle type", "차종"}, Keywords: []string{"vehicle", "차종"}},
	{Field: FieldColor, Aliases: []string{"color", "칼라"}, Keywords: []string{"color", "칼라"}},
	{Field: FieldBooth, Aliases: []string{"booth", "부스"}, Keywords: []string{"booth", "부스"}},
	{Field: FieldDefectArea, Aliases: []string{"defect area", "불량 부위"}, Keywords: []string{"defect area", "불량 부위"}},
	{Field: FieldDefectType, Aliases: []string{"defect type", "불량 유형"}, Keywords: []string{"defect type", "불량 유형"}},
	{Field: FieldRepainted, Aliases: []string{"repaint status", "재도장 여부"}, Keywords: []string{"repaint", "재도장"}},
	{Field: FieldAccepted, Aliases: []string{"acceptance status", "합인 여부"}, Keywords: []string{"acceptance", "합인"}},
}

// MatchHeader returns the field for a header, or FieldNone when no rule applies.
func MatchHeader(header string) Field {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return FieldNone
	}
	for _, rule := range HeaderRules {
		for _, alias := range rule.Aliases {
			if h == alias {
				return rule.Field
			}
		}
	}
	for _, rule := range HeaderRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(h, kw) {
				return rule.Field
			}
		}
	}
	return FieldNone
}

// columnMap resolves every header once. A field claimed by an earlier
// column is not reassigned; later duplicates are kept as extras.
func columnMap(headers []string) []Field {
	fields := make([]Field, len(headers))
	claimed := make(map[Field]bool)
	for i, h := range headers {
		f := MatchHeader(h)
		if f == FieldNone || claimed[f] {
			continue
		}
		claimed[f] = true
		fields[i] = f
	}
	return fields
}
