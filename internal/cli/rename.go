package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	renamed "github.com/renamed-to/renamed-go"
)

// RenameCmd creates the rename command.
func RenameCmd(env *Env) *cobra.Command {
	var (
		template string
		apply    bool
	)

	cmd := &cobra.Command{
		Use:   "rename <file>",
		Short: "Suggest an AI-generated filename for a document",
		Example: `  renamed rename scan001.pdf
  renamed rename scan001.pdf --template "{date}-{type}-{vendor}"
  renamed rename scan001.pdf --apply  # rename the local file in place`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, env, args[0], template, apply)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Naming template, e.g. \"{date}-{type}-{vendor}\"")
	cmd.Flags().BoolVar(&apply, "apply", false, "Rename the local file to the suggestion")

	return cmd
}

func runRename(cmd *cobra.Command, env *Env, path, template string, apply bool) error {
	client, err := env.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var opts *renamed.RenameOptions
	if template != "" {
		opts = &renamed.RenameOptions{Template: template}
	}

	result, err := client.Documents.RenameWithContext(cmd.Context(), renamed.File(path), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "%s -> %s\n", result.OriginalFilename, result.SuggestedFilename)
	if result.FolderPath != "" {
		fmt.Fprintf(env.Out, "folder: %s\n", result.FolderPath)
	}
	fmt.Fprintf(env.Out, "confidence: %.0f%%\n", result.Confidence*100)

	if !apply {
		return nil
	}

	target := filepath.Join(filepath.Dir(path), result.SuggestedFilename)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("refusing to overwrite existing file %s", target)
	}
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	fmt.Fprintf(env.Out, "renamed to %s\n", target)
	return nil
}
