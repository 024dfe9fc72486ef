package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/defect-atlas/pkg/services/fixture"
	"github.com/de-tools/defect-atlas/pkg/services/importer"
	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	count  int
	days   int
	seed   uint64
	out    string
	output io.Writer
}

func NewGenerateCmd(output io.Writer) *cobra.Command {
	gc := &GenerateCmd{output: output}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write demo inspection records as CSV",
		Args:  cobra.NoArgs,
		RunE:  gc.run,
	}

	cmd.Flags().IntVar(&gc.count, "count", fixture.DefaultCount, "Number of records")
	cmd.Flags().IntVar(&gc.days, "days", fixture.DefaultDays, "Days covered, ending today")
	cmd.Flags().Uint64Var(&gc.seed, "seed", 1, "Random seed")
	cmd.Flags().StringVar(&gc.out, "out", "-", "Output file, - for stdout")

	return cmd
}

func (gc *GenerateCmd) run(_ *cobra.Command, _ []string) error {
	ds := fixture.NewGenerator(gc.seed, gc.count, gc.days).Generate()

	if gc.out == "" || gc.out == "-" {
		return importer.WriteCSV(gc.output, ds.Records)
	}

	f, err := os.Create(gc.out)
	if err != nil {
		return err
	}
	if err := importer.WriteCSV(f, ds.Records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", gc.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(gc.output, "wrote %d records to %s\n", len(ds.Records), gc.out)
	return err
}
