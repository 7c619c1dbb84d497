package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const replPrompt = "you> "

func newReplCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read utterances line by line and answer each one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session()
			if err != nil {
				return err
			}
			return s.repl(cmd, raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "json", false, "print the full interpretation instead of the reply text")

	return cmd
}

// repl stops at end of input or on "quit" / "exit".
func (s *session) repl(cmd *cobra.Command, raw bool) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprint(out, replPrompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit":
			return nil
		case "":
			fmt.Fprint(out, replPrompt)
			continue
		}

		result := s.interpreter.Interpret(line, s.catalog)
		if raw {
			if err := writeJSON(cmd, result); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "assistant [%s]> %s\n", result.Kind, result.ResponseText)
			if result.MatchedBook != nil {
				fmt.Fprintf(out, "  book: %s by %s (%s)\n", result.MatchedBook.Title, result.MatchedBook.Author, availabilityLabel(result.MatchedBook.Available))
			}
		}
		fmt.Fprint(out, replPrompt)
	}

	return scanner.Err()
}

func availabilityLabel(available bool) string {
	if available {
		return "available"
	}
	return "borrowed"
}
