package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	renamed "github.com/renamed-to/renamed-go"
)

// ExtractCmd creates the extract command.
func ExtractCmd(env *Env) *cobra.Command {
	var (
		prompt     string
		schemaPath string
	)

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract structured data from a document",
		Example: `  renamed extract invoice.pdf --prompt "extract the total and the vendor"
  renamed extract invoice.pdf --schema invoice-schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, env, args[0], prompt, schemaPath)
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Natural-language description of the fields to extract")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to a JSON schema describing the expected output")

	return cmd
}

func runExtract(cmd *cobra.Command, env *Env, path, prompt, schemaPath string) error {
	if prompt == "" && schemaPath == "" {
		return fmt.Errorf("extract requires --prompt, --schema, or both")
	}

	opts := &renamed.ExtractOptions{Prompt: prompt}
	if schemaPath != "" {
		data, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("read schema %s: %w", schemaPath, err)
		}
		var schema map[string]any
		if err := json.Unmarshal(data, &schema); err != nil {
			return fmt.Errorf("parse schema %s: %w", schemaPath, err)
		}
		opts.Schema = schema
	}

	client, err := env.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Documents.ExtractWithContext(cmd.Context(), renamed.File(path), opts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(env.Out, string(out))
	fmt.Fprintf(env.ErrOut, "confidence: %.0f%%\n", result.Confidence*100)
	return nil
}
