package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/defect-atlas/pkg/services/importer"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	file   string
	dbPath string
	output io.Writer
}

func NewImportCmd(output io.Writer) *cobra.Command {
	ic := &ImportCmd{output: output}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a CSV or XLSX export into the local store",
		Args:  cobra.NoArgs,
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.file, "file", "", "CSV or XLSX export to load")
	cmd.Flags().StringVar(&ic.dbPath, "db", defaultDBPath, "Path of the DuckDB store")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(ic.file)
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Base(ic.file)
	records, err := importer.Parse(name, f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	db, ctrl, err := openController(ic.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	batch, err := ctrl.Import(cmd.Context(), name, records)
	if err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	_, err = fmt.Fprintf(ic.output, "imported %d of %d records from %s (batch %s)\n",
		batch.Inserted, batch.Records, name, batch.ID)
	return err
}
