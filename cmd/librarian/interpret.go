package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newInterpretCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "interpret <utterance>",
		Short:   "Interpret one utterance and print the result as JSON",
		Example: `  librarian interpret "recommend something by hawking"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session()
			if err != nil {
				return err
			}

			result := s.interpreter.Interpret(strings.Join(args, " "), s.catalog)
			return writeJSON(cmd, result)
		},
	}
}
