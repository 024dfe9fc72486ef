package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/services/fixture"
	"github.com/rs/zerolog"
)

// New builds the source described by a profile. The dataset origin is the
// profile name.
func New(ctx context.Context, p domain.SourceProfile) (Source, error) {
	switch p.Type {
	case domain.SourceTypeHTTP:
		baseURL := p.Setting("base_url", "")
		if baseURL == "" {
			return nil, fmt.Errorf("http profile %s requires base_url", p.Name)
		}
		timeout, err := time.ParseDuration(p.Setting("timeout", "30s"))
		if err != nil {
			return nil, fmt.Errorf("http profile %s: invalid timeout: %w", p.Name, err)
		}
		return NewHTTPSource(p.Name, HTTPSettings{
			BaseURL:  baseURL,
			RetryMax: atoi(p.Setting("retry_max", "3")),
			Timeout:  timeout,
		}, *zerolog.Ctx(ctx)), nil

	case domain.SourceTypeSnowflake:
		return warehouse(p, DialectQuestion, openSnowflake)
	case domain.SourceTypeDatabricks:
		return warehouse(p, DialectQuestion, openDatabricks)
	case domain.SourceTypePostgres:
		return warehouse(p, DialectDollar, openPostgres)

	case domain.SourceTypeS3:
		bucket, key := p.Setting("bucket", ""), p.Setting("key", "")
		if bucket == "" || key == "" {
			return nil, fmt.Errorf("s3 profile %s requires bucket and key", p.Name)
		}
		client, err := newS3Client(ctx, p)
		if err != nil {
			return nil, err
		}
		return NewObjectSource(client, bucket, key, p.Name), nil

	case domain.SourceTypeFixture:
		gen := fixture.NewGenerator(
			uint64(atoi(p.Setting("seed", "1"))),
			atoi(p.Setting("count", strconv.Itoa(fixture.DefaultCount))),
			atoi(p.Setting("days", strconv.Itoa(fixture.DefaultDays))),
		)
		return NewFixtureSource(gen), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, p.Type)
	}
}

func warehouse(p domain.SourceProfile, dialect Dialect, open func(domain.SourceProfile) (*sql.DB, error)) (Source, error) {
	db, err := open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to connect %s: %w", p, err)
	}
	src, err := NewWarehouseSource(db, dialect, p.Setting("table", defaultTable), p.Name)
	if err != nil {
		db.Close()
		return nil, err
	}
	return src, nil
}

// atoi treats malformed numbers as zero so generator and client defaults apply.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
