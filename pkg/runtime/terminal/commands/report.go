package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/defect-atlas/pkg/adapters"
	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/services/analysis"
	"github.com/spf13/cobra"
)

// ReportHandler renders a finished report.
type ReportHandler interface {
	Handle(report *domain.Report) error
}

type ReportCmd struct {
	input    inputFlags
	filters  filterFlags
	format   string
	mode     string
	level    string
	profiles RegistryLoader
	handlers map[string]ReportHandler
	output   io.Writer
}

// NewReportCmd builds the report command. handlers maps --format values to
// renderers; "json" is always available.
func NewReportCmd(profiles RegistryLoader, handlers map[string]ReportHandler, output io.Writer) *cobra.Command {
	rc := &ReportCmd{profiles: profiles, handlers: handlers, output: output}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize inspection records",
	}
	rc.input.register(cmd)
	rc.filters.register(cmd)
	cmd.PersistentFlags().StringVar(&rc.format, "format", "table", "Output format: table, text or json")

	booth := &cobra.Command{
		Use:   "booth",
		Short: "Count defects per paint booth",
		Args:  cobra.NoArgs,
		RunE:  rc.run(rc.booth),
	}

	timeline := &cobra.Command{
		Use:   "time",
		Short: "Count defects per hour, day or week",
		Args:  cobra.NoArgs,
		RunE:  rc.run(rc.timeline),
	}
	timeline.Flags().StringVar(&rc.mode, "mode", string(domain.TimeModeHourly), "Bucket mode: hourly, daily or weekly")

	area := &cobra.Command{
		Use:   "defect-area",
		Short: "Count defects per body area",
		Args:  cobra.NoArgs,
		RunE:  rc.run(rc.defectArea),
	}
	area.Flags().StringVar(&rc.level, "level", string(domain.DetailTop), "Detail level: top, mid or full")

	cmd.AddCommand(booth, timeline, area)
	return cmd
}

type reportFunc func(records []domain.InspectionRecord, report *domain.Report) (interface{}, error)

func (rc *ReportCmd) run(build reportFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		handler, ok := rc.handlers[rc.format]
		if !ok && rc.format != "json" {
			return fmt.Errorf("unsupported format %q", rc.format)
		}

		criteria, err := rc.filters.criteria()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		src, err := rc.input.source(ctx, rc.profiles)
		if err != nil {
			return err
		}
		ds, err := src.Fetch(ctx, criteria)
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		records := analysis.Filter(ds.Records, criteria)
		report := &domain.Report{
			Origin:  ds.Origin,
			Records: len(records),
			Filters: criteria,
		}
		payload, err := build(records, report)
		if err != nil {
			return err
		}

		if rc.format == "json" {
			enc := json.NewEncoder(rc.output)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}
		return handler.Handle(report)
	}
}

func (rc *ReportCmd) booth(records []domain.InspectionRecord, report *domain.Report) (interface{}, error) {
	counts := analysis.ByBooth(records)
	report.Title = "Defects by booth"

	section := domain.ReportSection{
		Title:   "Booths",
		Summary: map[string]interface{}{"booths": len(counts)},
	}
	for _, c := range counts {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        c.Booth,
			Value:       c.Count,
			Unit:        "defects",
			Description: share(c.Count, len(records)),
		})
	}
	report.Sections = []domain.ReportSection{section}
	return adapters.MapBoothCountsDomainToApi(counts), nil
}

func (rc *ReportCmd) timeline(records []domain.InspectionRecord, report *domain.Report) (interface{}, error) {
	mode, err := domain.ParseTimeMode(rc.mode)
	if err != nil {
		return nil, err
	}
	buckets := analysis.ByTime(records, mode)
	report.Title = fmt.Sprintf("Defects by time (%s)", mode)

	section := domain.ReportSection{
		Title:   "Buckets",
		Summary: map[string]interface{}{"buckets": len(buckets), "mode": string(mode)},
	}
	for _, b := range buckets {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        b.Label,
			Value:       b.Count,
			Unit:        "defects",
			Description: fmt.Sprintf("%d distinct dates", b.Dates),
		})
	}
	report.Sections = []domain.ReportSection{section}
	return adapters.MapTimeBucketsDomainToApi(buckets), nil
}

func (rc *ReportCmd) defectArea(records []domain.InspectionRecord, report *domain.Report) (interface{}, error) {
	level, err := domain.ParseDetailLevel(rc.level)
	if err != nil {
		return nil, err
	}
	views := analysis.DefectAreaDetail(analysis.ByDefectArea(records), level)
	report.Title = fmt.Sprintf("Defects by area (%s)", level)

	section := domain.ReportSection{
		Title:   "Areas",
		Summary: map[string]interface{}{"areas": len(views), "level": string(level)},
	}
	for _, v := range views {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        v.DisplayName,
			Value:       v.Count,
			Unit:        "defects",
			Description: v.Details,
		})
	}
	report.Sections = []domain.ReportSection{section}
	return adapters.MapDefectAreaViewsDomainToApi(views), nil
}

func share(n, total int) string {
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f%% of records", float64(n)*100/float64(total))
}
