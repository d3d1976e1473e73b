package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	renamed "github.com/renamed-to/renamed-go"
)

// ErrAPIKeyMissing is returned when no API key could be resolved from
// flags, the environment, or the config file.
var ErrAPIKeyMissing = errors.New(
	"no API key configured: pass --api-key, set RENAMED_API_KEY, or run 'renamed configure'")

// Env carries the injectable dependencies of the CLI commands, so tests
// can swap the output streams and config location.
type Env struct {
	Out        io.Writer
	ErrOut     io.Writer
	ConfigPath string

	// Bound to persistent flags on the root command.
	apiKey  string
	baseURL string
	debug   bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Env {
	return &Env{
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		ConfigPath: DefaultConfigPath(),
	}
}

// newClient builds an SDK client from the resolved configuration.
func (e *Env) newClient() (*renamed.Client, error) {
	fileCfg, err := LoadFileConfig(e.ConfigPath)
	if err != nil {
		return nil, err
	}

	apiKey := ResolveAPIKey(e.apiKey, fileCfg)
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	params := renamed.ConfigParams{
		APIKey:  apiKey,
		BaseURL: ResolveBaseURL(e.baseURL, fileCfg),
	}
	if e.debug {
		debug := true
		params.Debug = &debug
	}
	return renamed.NewClientWithParams(params)
}

// RootCmd assembles the root command and its subcommands.
func RootCmd(env *Env, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "renamed",
		Short:   "AI-powered document renaming, splitting, and extraction",
		Version: version,
		// Errors are printed by main with our own formatting.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&env.apiKey, "api-key", "", "API key (overrides RENAMED_API_KEY and the config file)")
	cmd.PersistentFlags().StringVar(&env.baseURL, "base-url", "", "API base URL override")
	cmd.PersistentFlags().BoolVar(&env.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(RenameCmd(env))
	cmd.AddCommand(SplitCmd(env))
	cmd.AddCommand(ExtractCmd(env))
	cmd.AddCommand(UserCmd(env))
	cmd.AddCommand(ConfigureCmd(env))

	return cmd
}
