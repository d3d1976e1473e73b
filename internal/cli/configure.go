package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ConfigureCmd creates the configure command, which stores the API key in
// the config file.
func ConfigureCmd(env *Env) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store the API key in " + DefaultConfigPath(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(env, baseURL)
		},
	}

	cmd.Flags().StringVar(&baseURL, "set-base-url", "", "Also store a base URL override")

	return cmd
}

func runConfigure(env *Env, baseURL string) error {
	fmt.Fprint(env.Out, "Enter API key: ")

	// Read without echo when attached to a terminal.
	var apiKey string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		apiKey = string(keyBytes)
		fmt.Fprintln(env.Out)
	} else {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read key: %w", err)
		}
		apiKey = line
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	cfg, err := LoadFileConfig(env.ConfigPath)
	if err != nil {
		return err
	}
	cfg.APIKey = apiKey
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if err := SaveFileConfig(env.ConfigPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "Saved to %s\n", env.ConfigPath)
	return nil
}
