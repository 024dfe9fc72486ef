package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/defect-atlas/pkg/models/domain"
	"github.com/de-tools/defect-atlas/pkg/services/config"
	"github.com/de-tools/defect-atlas/pkg/services/fixture"
	"github.com/de-tools/defect-atlas/pkg/services/source"
	"github.com/spf13/cobra"
)

// RegistryLoader opens the source profile registry on demand, so commands
// that never touch a profile work without a profiles file.
type RegistryLoader func() (config.Registry, error)

// inputFlags selects where a command reads records from.
type inputFlags struct {
	file    string
	profile string
	fixture bool
	seed    uint64
	count   int
	days    int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.file, "file", "", "CSV or XLSX export to read")
	flags.StringVar(&f.profile, "profile", "", "Source profile name from the profiles file")
	flags.BoolVar(&f.fixture, "fixture", false, "Use generated demo data")
	flags.Uint64Var(&f.seed, "seed", 1, "Seed of the generated data")
	flags.IntVar(&f.count, "count", fixture.DefaultCount, "Number of generated records")
	flags.IntVar(&f.days, "days", fixture.DefaultDays, "Days covered by the generated data")
}

func (f *inputFlags) source(ctx context.Context, profiles RegistryLoader) (source.Source, error) {
	selected := 0
	for _, set := range []bool{f.file != "", f.profile != "", f.fixture} {
		if set {
			selected++
		}
	}
	if selected > 1 {
		return nil, errors.New("--file, --profile and --fixture are mutually exclusive")
	}

	switch {
	case f.file != "":
		return source.FileSource{Path: f.file}, nil
	case f.profile != "":
		return profileSource(ctx, profiles, f.profile)
	default:
		return source.NewFixtureSource(fixture.NewGenerator(f.seed, f.count, f.days)), nil
	}
}

func profileSource(ctx context.Context, profiles RegistryLoader, name string) (source.Source, error) {
	registry, err := profiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	profile, err := registry.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}
	return source.New(ctx, profile)
}

// filterFlags are the record filters shared by every report.
type filterFlags struct {
	start     string
	end       string
	vehicle   string
	color     string
	repainted string
	accepted  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.start, "start", "", "First inspection date (YYYY-MM-DD)")
	flags.StringVar(&f.end, "end", "", "Last inspection date (YYYY-MM-DD)")
	flags.StringVar(&f.vehicle, "vehicle", "", "Vehicle type substring")
	flags.StringVar(&f.color, "color", "", "Color substring")
	flags.StringVar(&f.repainted, "repainted", "", "Repaint status: true or false")
	flags.StringVar(&f.accepted, "accepted", "", "Acceptance status: true or false")
}

func (f *filterFlags) criteria() (domain.FilterCriteria, error) {
	c := domain.FilterCriteria{
		StartDate:   f.start,
		EndDate:     f.end,
		VehicleType: f.vehicle,
		Color:       f.color,
	}
	var err error
	if c.Repainted, err = domain.ParseTriState(f.repainted); err != nil {
		return c, fmt.Errorf("--repainted: %w", err)
	}
	if c.Accepted, err = domain.ParseTriState(f.accepted); err != nil {
		return c, fmt.Errorf("--accepted: %w", err)
	}
	return c, c.Validate()
}
