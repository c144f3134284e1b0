// Command kiro is a terminal-resident modeless text editor.
package main

import (
	"fmt"
	"os"

	"github.com/kiro-editor/kiro/internal/editor"
	"github.com/kiro-editor/kiro/internal/kiroerr"
	"github.com/kiro-editor/kiro/internal/rawterm"
	"github.com/kiro-editor/kiro/internal/screen"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newLogger() zerolog.Logger {
	path := os.Getenv("KIRO_LOG_FILE")
	if path == "" {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}

func run(args []string) error {
	log := newLogger()
	log.Info().Strs("args", args).Msg("starting")

	raw, err := rawterm.Enable()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := raw.Restore(); rerr != nil {
			log.Error().Err(rerr).Msg("failed to restore terminal mode")
		}
	}()

	scr, err := screen.New(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	in := rawterm.NewInputReader(os.Stdin)
	ed := editor.New(in, scr)

	if len(args) > 0 {
		if oerr := ed.OpenFiles(args); oerr != nil {
			scr.Close()
			return oerr
		}
	}

	if rerr := ed.Run(); rerr != nil {
		log.Error().Err(rerr).Msg("editor exited with error")
		return rerr
	}
	log.Info().Msg("exiting cleanly")
	return nil
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kiro [file...]",
		Short: "A terminal-resident modeless text editor",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kiro:", err)
		if kerr, ok := err.(*kiroerr.Error); ok && kerr.Kind == kiroerr.KindTooSmallWindow {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
