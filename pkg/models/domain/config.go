package domain

import "fmt"

type SourceType string

const (
	SourceTypeHTTP       SourceType = "http"
	SourceTypeSnowflake  SourceType = "snowflake"
	SourceTypeDatabricks SourceType = "databricks"
	SourceTypePostgres   SourceType = "postgres"
	SourceTypeS3         SourceType = "s3"
	SourceTypeFixture    SourceType = "fixture"
)

// SourceProfile is one named record source from the profiles file.
type SourceProfile struct {
	Name     string
	Type     SourceType
	Settings map[string]string
}

func (p SourceProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Type, p.Name)
}

// Setting returns the named setting or def when it is absent or blank.
func (p SourceProfile) Setting(key, def string) string {
	if v, ok := p.Settings[key]; ok && v != "" {
		return v
	}
	return def
}
