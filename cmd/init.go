package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// init configures the root command's flags, binds them to EC2SSH_*
// environment variables via Viper, and merges the optional defaults file.
// Precedence: flag > environment > defaults file > built-in default.
func init() {
	rootCmd.Flags().StringVar(&cfgRegion, "region", "", "AWS region (defaults to SDK configuration)")
	rootCmd.Flags().StringVar(&cfgProfile, "profile", "", "AWS shared-config profile")
	rootCmd.Flags().StringVar(&cfgTrustDir, "trust-dir", filepath.Join(os.Getenv("HOME"), ".ec2ssh"), "Directory holding per-instance host key files")
	rootCmd.Flags().StringVar(&cfgAddress, "address", "public", "Which instance address to connect to: public or private")
	rootCmd.Flags().StringVar(&cfgSSHCommand, "ssh-command", "ssh", "SSH client binary to invoke")

	// ec2ssh's own flags must precede the instance name; everything after it
	// belongs to ssh, including flag-looking tokens like -l or -p.
	rootCmd.Flags().SetInterspersed(false)

	// Bind env with Viper
	_ = viper.BindPFlag("region", rootCmd.Flags().Lookup("region"))
	_ = viper.BindPFlag("profile", rootCmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("trust-dir", rootCmd.Flags().Lookup("trust-dir"))
	_ = viper.BindPFlag("address", rootCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("ssh-command", rootCmd.Flags().Lookup("ssh-command"))

	viper.SetEnvPrefix("EC2SSH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Pull in environment overrides, then let the defaults file fill
	// whatever is still at its built-in default.
	cobra.OnInitialize(func() {
		if v := viper.GetString("region"); v != "" {
			cfgRegion = v
		}
		if v := viper.GetString("profile"); v != "" {
			cfgProfile = v
		}
		if v := viper.GetString("trust-dir"); v != "" {
			cfgTrustDir = v
		}
		if v := viper.GetString("address"); v != "" {
			cfgAddress = v
		}
		if v := viper.GetString("ssh-command"); v != "" {
			cfgSSHCommand = v
		}

		fc, err := loadFileConfig(filepath.Join(cfgTrustDir, "config.yaml"))
		if err != nil {
			cfgFileErr = err
			return
		}
		if fc.Region != "" && cfgRegion == "" {
			cfgRegion = fc.Region
		}
		if fc.Profile != "" && cfgProfile == "" {
			cfgProfile = fc.Profile
		}
		if fc.Address != "" && !settingOverridden("address") {
			cfgAddress = fc.Address
		}
		if fc.SSHCommand != "" && !settingOverridden("ssh-command") {
			cfgSSHCommand = fc.SSHCommand
		}
	})
}

// settingOverridden reports whether a setting with a non-empty built-in
// default was explicitly set by flag or environment, in which case the
// defaults file must not touch it.
func settingOverridden(name string) bool {
	if rootCmd.Flags().Changed(name) {
		return true
	}
	env := "EC2SSH_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return os.Getenv(env) != ""
}
