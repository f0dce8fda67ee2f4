package cmd

import "errors"

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

// Stage failure sentinels. Each one is terminal for the run; Execute maps
// them to a single diagnostic line and an exit status of 1, distinct from
// any status the ssh child itself can report.
var (
	errNotFound      = errors.New("no running instance found with that name")
	errAmbiguousName = errors.New("multiple instances found with that name")
	errNoHostKeys    = errors.New("no SSH host keys found in console output (instance may still be booting; retry shortly)")
	errChildProcess  = errors.New("ssh client could not be started")
)

var (
	// Global configuration populated by flags and/or environment variables,
	// with the optional defaults file filling what is left. Declared here so
	// they are visible across the command wiring.
	cfgRegion     string
	cfgProfile    string
	cfgTrustDir   string
	cfgAddress    string
	cfgSSHCommand string

	// cfgFileErr records a defaults-file parse failure during
	// initialization; RunE surfaces it, since cobra.OnInitialize cannot
	// return an error.
	cfgFileErr error
)

// Allow tests to stub the control-plane client and the stage functions.
var (
	newConsoleClientFunc = newConsoleClient
	resolveInstanceFunc  = resolveInstance
	launchSSHFunc        = launchSSH
)
