// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/styleforge/internal/synth"
)

var generateCmd = &cobra.Command{
	Use:   "generate [intent-file]",
	Short: "Synthesize a style document from saved answers",
	Long: `Generate reads an intent (JSON) from a file or stdin, synthesizes it
into a style, and writes the YAML document. Partial intents are fine: the
synthesizer maps whatever has been answered so far.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "write the document to a file instead of stdout")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	in, err := readIntentArg(args)
	if err != nil {
		return err
	}

	doc, err := synth.EmitYAML(synth.ToStyle(in))
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}

	if err := os.WriteFile(output, doc, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
	return nil
}
