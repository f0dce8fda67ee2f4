package cmd

import (
	"errors"
	"fmt"
	"os"
)

// Execute runs the root command. An exit status reported by the ssh child
// passes through unchanged; it was already traced, so no extra diagnostic
// is printed for it. Every failure before ssh starts exits 1 after a single
// diagnostic line naming the stage that failed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var se *sshExitError
		if errors.As(err, &se) {
			exitFunc(se.code)
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "ec2ssh: %v\n", err)
		exitFunc(1)
		return
	}
}
