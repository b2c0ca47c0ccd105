package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"housing-dashboard/tui"
	"housing-dashboard/utils"
)

var tuiLogFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Explore the data interactively in the terminal",
	Long: `Open the interactive explorer. Arrow keys move between and change the
neighborhood, year, condition and price controls; space plays the years
back, r resets every filter and q quits.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Write logs to this file while the UI is open")
}

func runTUI(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if tuiLogFile != "" {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger = utils.NewLoggerTo(logOut)
	logger.SetDebug(flagDebug)
	serveMetrics()

	sink := tui.NewSink()
	ctrl, err := newController(cmd.Context(), sink)
	if err != nil {
		return err
	}
	defer ctrl.Close()
	ctrl.Refresh()

	model := tui.New(ctrl, sink, float64(cfg.PriceStep))
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
