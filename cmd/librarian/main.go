package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/varshasramu/Smart-library-assistant/pkg/nlp"
)

type options struct {
	catalogPath   string
	knowledgePath string
	seed          uint64
}

// session holds what every subcommand needs: the interpreter and the catalog it reads.
type session struct {
	interpreter nlp.IInterpreter
	catalog     []nlp.Book
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "librarian",
		Short:         "Try the library voice assistant from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "JSON file with the catalog to match against (defaults to the bundled sample)")
	rootCmd.PersistentFlags().StringVar(&opts.knowledgePath, "knowledge", "", "JSON knowledge base overriding the bundled vocabulary")
	rootCmd.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "seed for response variants, 0 picks at random")

	rootCmd.AddCommand(newInterpretCmd(opts), newReplCmd(opts))

	return rootCmd
}

func (o *options) session() (*session, error) {
	kb := nlp.MustDefaultKnowledgeBase()
	if o.knowledgePath != "" {
		loaded, err := nlp.LoadKnowledgeBaseFile(o.knowledgePath)
		if err != nil {
			return nil, err
		}
		kb = loaded
	}

	catalog := nlp.SampleCatalog()
	if o.catalogPath != "" {
		loaded, err := nlp.LoadCatalogFile(o.catalogPath)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	var interpreterOpts []nlp.Option
	if o.seed != 0 {
		interpreterOpts = append(interpreterOpts, nlp.WithRandomSource(rand.New(rand.NewPCG(o.seed, o.seed))))
	}

	return &session{
		interpreter: nlp.NewInterpreter(kb, interpreterOpts...),
		catalog:     catalog,
	}, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := jsoniter.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
