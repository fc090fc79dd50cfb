package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cronbit/cronbit/cron"
	"github.com/cronbit/cronbit/trigger"
)

func newNextCommand() *cobra.Command {
	var from string
	var count int

	cmd := &cobra.Command{
		Use:   "next <expr>",
		Short: "Print the next N fire times of a cron expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trig, err := trigger.NewCronTrigger(args[0])
			if err != nil {
				return fmt.Errorf("invalid expression: %w", err)
			}

			start := time.Now().UTC()
			if from != "" {
				start, err = time.Parse(time.RFC3339, from)
				if err != nil {
					return fmt.Errorf("invalid --from timestamp: %w", err)
				}
				start = start.UTC()
			}

			out := cmd.OutOrStdout()
			prev := start.UnixNano()
			for i := 0; i < count; i++ {
				next, err := trig.NextFireTime(prev)
				if err != nil {
					if errors.Is(err, cron.ErrTimeExhausted) {
						fmt.Fprintln(out, "(schedule exhausted)")
						return nil
					}
					return err
				}
				fmt.Fprintln(out, time.Unix(0, next).UTC().Format(time.RFC3339))
				prev = next
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start instant in RFC3339 (default: now, UTC)")
	cmd.Flags().IntVar(&count, "count", 1, "number of fire times to print")

	return cmd
}
