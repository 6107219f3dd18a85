package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/ngsphy-seqgen/pkg/state"
	"github.com/spf13/cobra"
)

var (
	statusLabelStyle = lipgloss.NewStyle().Bold(true).Width(16)
	statusOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
)

func NewStatusCmd(common *commonFlags) *cobra.Command {
	f := &settingsFlags{}
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last run of the output folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, common, f)
			if err != nil {
				return err
			}
			rec, err := state.LastRun(s.StateDir())
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No runs recorded in %s\n", s.OutputFolder)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRun(rec))
			return nil
		},
	}
	f.register(statusCmd)
	return statusCmd
}

func renderRun(rec *state.RunRecord) string {
	result := statusOKStyle.Render("finished")
	if !rec.OK {
		result = statusFailStyle.Render("failed")
	}
	rows := []string{statusTitleStyle.Render("Run " + rec.ID)}
	add := func(label, value string) {
		if value == "" {
			return
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, statusLabelStyle.Render(label), value))
	}
	add("Result", result)
	add("Started", rec.StartedAt.Format(time.RFC3339))
	if !rec.FinishedAt.IsZero() {
		add("Duration", rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond).String())
	}
	add("Control file", rec.ControlFile)
	add("Data prefix", rec.DataPrefix)
	add("Loci", strconv.Itoa(rec.Loci))
	add("Timing report", rec.TimingReport)
	if !rec.OK {
		add("Message", strings.TrimSpace(rec.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
