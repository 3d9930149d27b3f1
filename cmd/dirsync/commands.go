package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirsync/pkg/config"
	"github.com/arthur-debert/dirsync/pkg/filesystem"
	"github.com/arthur-debert/dirsync/pkg/logging"
	"github.com/arthur-debert/dirsync/pkg/repository"
	"github.com/arthur-debert/dirsync/pkg/style"
	"github.com/arthur-debert/dirsync/pkg/syncer"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// syncFlags holds the flags shared by the run and sync commands.
type syncFlags struct {
	configFile string
	logfile    string
	intervalMs int
}

func (f *syncFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", MsgFlagConfig)
	cmd.Flags().StringVar(&f.logfile, "logfile", "", MsgFlagLogfile)
	cmd.Flags().IntVar(&f.intervalMs, "interval", 0, MsgFlagInterval)
}

// loadConfig merges the config file with the flags and arguments the user
// actually set, configures logging, and validates the result.
func loadConfig(cmd *cobra.Command, args []string, flags *syncFlags, verbosity int) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if len(args) == 2 {
		overrides["src_dir"] = args[0]
		overrides["dest_dir"] = args[1]
	}
	if cmd.Flags().Changed("logfile") {
		overrides["logfile_path"] = flags.logfile
	}
	if cmd.Flags().Changed("interval") {
		overrides["interval_ms"] = flags.intervalMs
	}

	cfg, err := config.Load(flags.configFile, overrides)
	if err != nil {
		return nil, err
	}

	logging.SetupLogger(verbosity, cfg.ResolvedLogfilePath())
	logStartup(cmd)

	if err := cfg.Validate(filesystem.NewOS()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePair opens the source and destination repositories for a validated
// configuration. The destination claims exclusive ownership of its tree, so
// it must start out empty.
func resolvePair(cfg *config.Config) (src, dest types.Repository, err error) {
	opts := repository.Options{LogfilePath: cfg.ResolvedLogfilePath()}
	src, err = repository.Resolve(cfg.SrcDir, opts)
	if err != nil {
		return nil, nil, err
	}
	opts.MustBeEmpty = true
	dest, err = repository.Resolve(cfg.DestDir, opts)
	if err != nil {
		return nil, nil, err
	}
	return src, dest, nil
}

func newRunCmd(verbosity *int) *cobra.Command {
	flags := &syncFlags{}
	cmd := &cobra.Command{
		Use:   "run [SRC DEST]",
		Short: MsgRunShort,
		Long:  MsgRunLong,
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args, flags, *verbosity)
			if err != nil {
				return err
			}
			src, dest, err := resolvePair(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine := syncer.New(src, dest, cfg.Interval())
			if err := engine.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSyncCmd(verbosity *int) *cobra.Command {
	flags := &syncFlags{}
	cmd := &cobra.Command{
		Use:   "sync [SRC DEST]",
		Short: MsgSyncShort,
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args, flags, *verbosity)
			if err != nil {
				return err
			}
			src, dest, err := resolvePair(cfg)
			if err != nil {
				return err
			}

			records, err := syncer.New(src, dest, cfg.Interval()).Cycle()
			if err != nil {
				return err
			}
			printChanges(cmd, records)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newScanCmd(verbosity *int) *cobra.Command {
	var logfile string
	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: MsgScanShort,
		Long:  MsgScanLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(*verbosity, logfile)
			logStartup(cmd)

			repo, err := repository.Resolve(args[0], repository.Options{LogfilePath: logfile})
			if err != nil {
				return err
			}
			records, err := repo.UpdateStatus()
			if err != nil {
				return err
			}
			printChanges(cmd, records)
			return nil
		},
	}
	cmd.Flags().StringVar(&logfile, "logfile", "", MsgFlagLogfile)
	return cmd
}

func printChanges(cmd *cobra.Command, records []types.ChangeRecord) {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), MsgNoChanges)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), style.RenderChanges(records))
}
