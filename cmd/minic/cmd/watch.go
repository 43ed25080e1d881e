package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"minic/pkg/sources"
	"minic/pkg/utils"
	"minic/pkg/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Re-check source files whenever they change",
	Long: `Checks every file once and then again after each saved change, until
interrupted. Saves that leave the contents unchanged are ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ch, err := newChecker(cmd, true)
	if err != nil {
		return err
	}
	store := sources.NewStore(cfg.Sources.MaxFileBytes)

	w, err := watch.New(store, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range args {
		f, err := store.Load(path)
		if err != nil {
			return err
		}
		ch.run(f)
		if err := w.Add(path); err != nil {
			return err
		}
	}

	logger.Info("watching for changes", "files", w.Files())
	return w.Run(ctx, func(f *sources.File) {
		logger.Info("change detected", "file", utils.DisplayPath(f.Path))
		ch.run(f)
	})
}
