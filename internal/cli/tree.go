package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wherec/internal/filterlang"
	"github.com/roach88/wherec/internal/where"
)

type treeResult struct {
	Expression string `json:"expression"`
	Tree       string `json:"tree"`
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <expression>",
		Short: "Print the condition tree of a filter expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			w, err := filterlang.Parse(args[0])
			if err != nil {
				return commandError(f, ErrCodeParse, err)
			}

			tree := strings.TrimSuffix(where.Tree(w).String(), "\n")
			if f.Format == "json" {
				return f.Success(treeResult{Expression: w.String(), Tree: tree})
			}
			return f.Success(tree)
		},
	}
}
