// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/meshintel/styleforge/internal/synth"
	"github.com/meshintel/styleforge/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the interactive style wizard in the terminal",
	Long: `Wizard walks through the style interview interactively. When the
interview completes, the style document is written to the output file
(default: custom-style` + synth.DocumentExtension + ` in the current directory).`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringP("output", "o", "", "output file (default: <style-id>"+synth.DocumentExtension+")")
	wizardCmd.Flags().String("intent", "", "resume from a saved intent file (JSON)")

	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, args []string) error {
	model := wizard.New()
	if intentFile, _ := cmd.Flags().GetString("intent"); intentFile != "" {
		in, err := readIntentArg([]string{intentFile})
		if err != nil {
			return err
		}
		model = wizard.FromIntent(in)
	}

	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(wizard.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	if err := m.Err(); err != nil {
		return err
	}
	if m.Aborted() {
		fmt.Fprintln(os.Stderr, "Wizard aborted; no style written.")
		return nil
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "custom-style" + synth.DocumentExtension
	}
	if err := os.WriteFile(output, m.Document(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
	return nil
}
