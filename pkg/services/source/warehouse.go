package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/domain"

	dbconfig "github.com/databricks/databricks-sdk-go/config"
	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/jackc/pgx/v5/stdlib"
	sf "github.com/snowflakedb/gosnowflake"
)

const defaultTable = "inspection_records"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// Dialect captures the placeholder syntax of a warehouse driver.
type Dialect int

const (
	DialectQuestion Dialect = iota // ?
	DialectDollar                  // $1
)

func (d Dialect) placeholder(n int) string {
	if d == DialectDollar {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// WarehouseSource reads a table or view with one row per inspection. Text
// columns are expected as strings and the status columns as nullable
// booleans.
type WarehouseSource struct {
	db      *sql.DB
	dialect Dialect
	table   string
	origin  string
}

func NewWarehouseSource(db *sql.DB, dialect Dialect, table, origin string) (*WarehouseSource, error) {
	if table == "" {
		table = defaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &WarehouseSource{db: db, dialect: dialect, table: table, origin: origin}, nil
}

func (s *WarehouseSource) Fetch(ctx context.Context, criteria domain.FilterCriteria) (*domain.Dataset, error) {
	query, args := s.query(criteria)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	records := make([]domain.InspectionRecord, 0)
	for rows.Next() {
		var (
			id, date, tm, vehicle, color, booth, area, defect sql.NullString
			repainted, accepted                               sql.NullBool
		)
		if err := rows.Scan(&id, &date, &tm, &vehicle, &color, &booth, &area, &defect, &repainted, &accepted); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		records = append(records, domain.InspectionRecord{
			ID:          id.String,
			Date:        date.String,
			Time:        tm.String,
			VehicleType: vehicle.String,
			Color:       color.String,
			Booth:       booth.String,
			DefectArea:  area.String,
			DefectType:  defect.String,
			Repainted:   adapters.MapNullBoolToTriState(repainted),
			Accepted:    adapters.MapNullBoolToTriState(accepted),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.Dataset{
		Records: records,
		Options: optionsOf(records),
		Origin:  s.origin,
	}, nil
}

func (s *WarehouseSource) Close() error {
	return s.db.Close()
}

func (s *WarehouseSource) query(c domain.FilterCriteria) (string, []any) {
	var (
		where []string
		args  []any
	)
	if c.StartDate != "" {
		args = append(args, c.StartDate)
		where = append(where, "inspection_date >= "+s.dialect.placeholder(len(args)))
	}
	if c.EndDate != "" {
		args = append(args, c.EndDate)
		where = append(where, "inspection_date <= "+s.dialect.placeholder(len(args)))
	}

	query := fmt.Sprintf(`SELECT id, inspection_date, inspection_time, vehicle_type, color, booth,
	defect_area, defect_type, is_repainted, is_accepted FROM %s`, s.table)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query + " ORDER BY inspection_date, inspection_time", args
}

func openSnowflake(p domain.SourceProfile) (*sql.DB, error) {
	dsn, err := sf.DSN(&sf.Config{
		Account:   p.Setting("account", ""),
		User:      p.Setting("user", ""),
		Password:  p.Setting("password", ""),
		Database:  p.Setting("database", ""),
		Schema:    p.Setting("schema", ""),
		Warehouse: p.Setting("warehouse", ""),
		Role:      p.Setting("role", ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DSN: %w", err)
	}
	return sql.Open("snowflake", dsn)
}

func openDatabricks(p domain.SourceProfile) (*sql.DB, error) {
	dsn, err := databricksDSN(p)
	if err != nil {
		return nil, err
	}
	return sql.Open("databricks", dsn)
}

// databricksDSN resolves host and token the way the Databricks tooling
// does: explicit settings first, then DATABRICKS_* variables and the named
// profile of the databricks config file.
func databricksDSN(p domain.SourceProfile) (string, error) {
	cfg := &dbconfig.Config{
		Host:       p.Setting("host", ""),
		Token:      p.Setting("token", ""),
		Profile:    p.Setting("databricks_profile", ""),
		ConfigFile: p.Setting("config_file", ""),
	}
	if err := cfg.EnsureResolved(); err != nil {
		return "", fmt.Errorf("databricks profile %s: %w", p.Name, err)
	}

	path := p.Setting("http_path", "")
	if cfg.Host == "" || cfg.Token == "" || path == "" {
		return "", fmt.Errorf("databricks profile %s requires host, token and http_path", p.Name)
	}
	host := cfg.Host
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("databricks profile %s: invalid host %q", p.Name, cfg.Host)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("token:%s@%s%s", cfg.Token, u.Host, path), nil
}

func openPostgres(p domain.SourceProfile) (*sql.DB, error) {
	dsn := p.Setting("dsn", "")
	if dsn == "" {
		return nil, fmt.Errorf("postgres profile %s requires dsn", p.Name)
	}
	return sql.Open("pgx", dsn)
}
