package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const atLayout = "2006-01-02 15:04"

func composeCmd() *cobra.Command {
	var (
		at       string
		realtime bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose screensaver content and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := deps.Composer.Now(ctx)
			if at != "" {
				t, err := time.ParseInLocation(atLayout, at, now.Location())
				if err != nil {
					return fmt.Errorf("invalid --at %q, want %q: %w", at, atLayout, err)
				}
				now = t
			}
			deps.Locations.Initialize(ctx)

			content := deps.Composer.Compose(ctx, now)
			if realtime {
				content = deps.Composer.Realtime(ctx, now)
			}
			return printJSON(cmd.OutOrStdout(), content)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "evaluate at this local time instead of now, e.g. \"2024-03-04 07:30\"")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "print the realtime view (no time/date, adds userName)")
	return cmd
}
