package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cronbit/cronbit/cron"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <expr>",
		Short: "Compile a cron expression and print its field summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := cron.Compile(args[0])
			if err != nil {
				var fieldErr *cron.FieldSyntaxError
				if errors.As(err, &fieldErr) {
					return fmt.Errorf("invalid expression: field %q, token %q", fieldErr.Field, fieldErr.Token)
				}
				return fmt.Errorf("invalid expression: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "valid: %s\n", expr.String())
			for _, field := range expr.Summary() {
				fmt.Fprintf(out, "  %-13s %s\n", field.Name, field.Values)
			}
			return nil
		},
	}
}
