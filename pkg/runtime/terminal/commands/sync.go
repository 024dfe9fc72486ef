package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

type SyncCmd struct {
	profile  string
	dbPath   string
	timeout  time.Duration
	profiles RegistryLoader
	output   io.Writer
}

func NewSyncCmd(profiles RegistryLoader, output io.Writer) *cobra.Command {
	sc := &SyncCmd{profiles: profiles, output: output}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull a source profile into the local store once",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "", "Source profile name from the profiles file")
	cmd.Flags().StringVar(&sc.dbPath, "db", defaultDBPath, "Path of the DuckDB store")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", 5*time.Minute, "Upper bound of the sync run")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (sc *SyncCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), sc.timeout)
	defer cancel()

	src, err := profileSource(ctx, sc.profiles, sc.profile)
	if err != nil {
		return err
	}

	db, ctrl, err := openController(sc.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctrl.Register(sc.profile, src)
	state, err := ctrl.RunOnce(ctx, sc.profile)
	if err != nil {
		return fmt.Errorf("sync %s failed: %w", sc.profile, err)
	}

	_, err = fmt.Fprintf(sc.output, "synced %d records from %s\n", state.Records, sc.profile)
	return err
}
