package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ec2ssh <instance_name> [ssh arguments...]",
	Short: "SSH to an EC2 instance by Name tag, with host keys pinned from console output",
	Long: "Resolves an EC2 instance by its Name tag, bootstraps SSH host-key trust from the " +
		"instance's boot console output on first contact, and runs ssh pinned to the resulting " +
		"per-instance known_hosts file. Arguments after the instance name are passed to ssh " +
		"verbatim, so `ec2ssh mydev -l ubuntu uptime` works as expected.",
	Version: Version,
	Args:    cobra.MinimumNArgs(1),
	// Runtime failures already produce a one-line diagnostic; dumping usage
	// after them would bury it.
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFileErr != nil {
			return cfgFileErr
		}
		if cfgAddress != "public" && cfgAddress != "private" {
			return fmt.Errorf("--address must be \"public\" or \"private\", got %q", cfgAddress)
		}

		name := args[0]
		sshArgs := args[1:]
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		client, err := newConsoleClientFunc(ctx)
		if err != nil {
			return err
		}

		identity, err := resolveInstanceFunc(ctx, client, name)
		if err != nil {
			return fmt.Errorf("resolve instance: %w", err)
		}

		store := newTrustStore(cfgTrustDir)
		trustPath, err := store.ensureTrust(ctx, client, identity)
		if err != nil {
			return fmt.Errorf("bootstrap trust: %w", err)
		}

		code, err := launchSSHFunc(identity.Address, trustPath, sshArgs)
		if err != nil {
			return fmt.Errorf("launch ssh: %w", err)
		}
		if code != 0 {
			return &sshExitError{code: code}
		}
		return nil
	},
}
