// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/styleforge/internal/intent"
	"github.com/meshintel/styleforge/pkg/types"
)

var decideCmd = &cobra.Command{
	Use:   "decide [intent-file]",
	Short: "Show the next wizard question for a partial intent",
	Long: `Decide reads a partial intent (JSON) from a file or stdin and prints
the decision package: outstanding fields, the next question, and the answer
options with their patches. Useful for scripting the wizard or debugging
the question flow.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecide,
}

func init() {
	decideCmd.Flags().Bool("yaml", false, "output YAML instead of JSON")

	rootCmd.AddCommand(decideCmd)
}

func runDecide(cmd *cobra.Command, args []string) error {
	in, err := readIntentArg(args)
	if err != nil {
		return err
	}

	pkg := intent.Decide(in)

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(pkg)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(pkg)
}

// readIntentArg reads an intent from the named file, or stdin when no
// argument is given. An empty input is a fresh intent.
func readIntentArg(args []string) (types.StyleIntent, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return types.StyleIntent{}, fmt.Errorf("reading intent: %w", err)
	}

	if len(data) == 0 {
		return types.StyleIntent{}, nil
	}
	return intent.DecodeIntent(data)
}
