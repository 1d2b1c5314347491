// idsctl exercises the IDS codec from the command line: validate a file,
// round-trip it through the model, or emit a fresh default document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idsforge/internal/ids/codec"
	"idsforge/internal/ids/model"
	"idsforge/internal/ids/validate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "idsctl",
		Short:         "IDS document toolbox",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newValidateCmd(), newRoundtripCmd(), newNewCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.ids>",
		Short: "Parse an IDS file and report completeness issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			issues := validate.Document(root)
			if len(issues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", issue.Rule, issue.Message)
			}
			return fmt.Errorf("%d issue(s) found", len(issues))
		},
	}
}

func newRoundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <file.ids>",
		Short: "Parse an IDS file and re-export it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			xmlData, err := codec.ToXML(root)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(xmlData)
			return err
		},
	}
}

func newNewCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Emit a default IDS document to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := model.NewRoot()
			if title != "" {
				root.Header.Title = title
			}

			xmlData, err := codec.ToXML(root)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(xmlData)
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "document title")
	return cmd
}

func loadDocument(path string) (*model.IDSRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	root, err := codec.FromXML(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, nil
}
