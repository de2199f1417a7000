package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/service"
)

func routinesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routines",
		Short: "List enabled routines and whether each applies right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			routines, err := deps.Routines.FindEnabledOrderedByPriorityDesc(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), routines)
			}

			now := deps.Composer.Now(ctx)
			evaluator := service.NewRoutineEvaluator(service.MergeLastWins)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRIORITY\tNAME\tWINDOW\tDAYS\tACTIVE\tACTIONS")
			for _, r := range routines {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\t%s\n",
					r.Priority, r.Name, window(r), r.DayCategory, evaluator.IsApplicable(r, now), actions(r.Actions))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print routines as JSON")
	return cmd
}

func window(r domain.Routine) string {
	if !r.HasWindow() {
		return "all day"
	}
	return r.StartTime.String() + "-" + r.EndTime.String()
}

func actions(list []domain.ActionType) string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, strings.TrimPrefix(string(a), "SHOW_"))
	}
	return strings.Join(names, ",")
}
