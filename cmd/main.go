package main

import (
	"os"

	"github.com/koskimas/msggen/internal/cmd"
	"github.com/koskimas/msggen/internal/gen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dir      string
		verbose  bool
		dumpPlan bool
	)

	rootCmd := &cobra.Command{
		Use:          "msggen",
		Short:        "Generates Go message types and codecs from zcm schemas",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cmd.SetLogger(logger)
			gen.SetLogger(logger)

			if dir == "" {
				if dir, err = os.Getwd(); err != nil {
					return err
				}
			}

			s := cmd.Settings{WorkingDir: dir}
			if dumpPlan {
				s.PlanOutput = c.OutOrStdout()
			}

			return cmd.Run(s)
		},
	}

	rootCmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of the msggen.yaml file, defaults to the working directory")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every generated file")
	rootCmd.Flags().BoolVar(&dumpPlan, "dump-plan", false, "Print the encode, decode and init plan of every struct")

	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true

	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	return cfg.Build()
}
