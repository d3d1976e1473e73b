package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UserCmd creates the user command.
func UserCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show the authenticated user and credit balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUser(cmd, env)
		},
	}
}

func runUser(cmd *cobra.Command, env *Env) error {
	client, err := env.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	user, err := client.Users.MeWithContext(cmd.Context())
	if err != nil {
		return err
	}

	if user.Name != "" {
		fmt.Fprintf(env.Out, "name:    %s\n", user.Name)
	}
	fmt.Fprintf(env.Out, "email:   %s\n", user.Email)
	if user.Team != nil {
		fmt.Fprintf(env.Out, "team:    %s\n", user.Team.Name)
	}
	if user.Credits != nil {
		fmt.Fprintf(env.Out, "credits: %d\n", *user.Credits)
	} else {
		fmt.Fprintf(env.Out, "credits: unknown\n")
	}
	return nil
}
