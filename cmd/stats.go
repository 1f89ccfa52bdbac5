package cmd

import (
	"strconv"

	"dispatch/models"
	"dispatch/services"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard counters of the dispatch sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newSheetClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			svc := newDispatchService(client, cfg, nil, services.NewActivityRecorder(nil))

			spinner, _ := pterm.DefaultSpinner.Start("Reading " + cfg.DispatchSheet + " sheet")
			stats, err := svc.Stats(cmd.Context())
			if err != nil {
				if spinner != nil {
					spinner.Fail(err.Error())
				}
				return err
			}
			if spinner != nil {
				spinner.Success("Done")
			}
			return pterm.DefaultTable.WithHasHeader().WithData(statsTable(stats)).Render()
		},
	}
}

func statsTable(s models.DashboardStats) pterm.TableData {
	row := func(stage string, pending, done int) []string {
		return []string{stage, strconv.Itoa(pending), strconv.Itoa(done)}
	}
	return pterm.TableData{
		{"Stage", "Pending", "Done"},
		row("Loading point", s.PendingProcessing, s.ProcessedIndents),
		row("Loading complete", s.PendingLoading, s.LoadingCompleted),
		row("Gate pass", s.PendingGatePass, s.GatePassCompleted),
		{"Total indents", strconv.Itoa(s.TotalIndents), ""},
	}
}
