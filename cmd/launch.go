package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
)

// sshExitError carries the ssh child's own exit status through the cobra
// error path so Execute can terminate with it unchanged. Operators rely on
// ssh's status conventions (255 for connection-level failure, the remote
// command's status otherwise); remapping them would break scripts.
type sshExitError struct {
	code int
}

func (e *sshExitError) Error() string {
	return fmt.Sprintf("ssh exited with status %d", e.code)
}

// buildSSHArgs constructs the client argument list. Host-key verification is
// confined to the trust record: the user's known_hosts is displaced, the
// global file is disabled, and strict checking is forced so an unexpected
// key is fatal rather than an interactive prompt. Caller-supplied arguments
// ride along verbatim after the address.
func buildSSHArgs(address, trustPath string, extraArgs []string) []string {
	args := []string{
		"-o", "UserKnownHostsFile=" + trustPath,
		"-o", "GlobalKnownHostsFile=/dev/null",
		"-o", "StrictHostKeyChecking=yes",
		address,
	}
	return append(args, extraArgs...)
}

// launchSSH runs the external ssh client against the resolved address,
// pinned to the trust record, and returns its exit status unchanged. It
// blocks until the child exits with no timeout, mirroring interactive ssh.
// SIGINT and SIGTERM are forwarded so an operator interrupt reaches the
// child instead of orphaning it.
func launchSSH(address, trustPath string, extraArgs []string) (int, error) {
	args := buildSSHArgs(address, trustPath, extraArgs)
	trace("Running: %s", renderInvocation(cfgSSHCommand, args))

	child := exec.Command(cfgSSHCommand, args...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Start(); err != nil {
		return 0, fmt.Errorf("%w: %v", errChildProcess, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range sigCh {
			_ = child.Process.Signal(sig)
		}
	}()

	err := child.Wait()
	signal.Stop(sigCh)
	close(sigCh)

	exitCode := 0
	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			return 0, fmt.Errorf("%w: %v", errChildProcess, err)
		}
		exitCode = ee.ExitCode()
		// A signal-killed child reports -1, which os.Exit would turn into
		// 255 and collide with ssh's connection-failure status. Use the
		// shell convention instead.
		if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			exitCode = 128 + int(ws.Signal())
		}
	}
	trace("Exit status: %d", exitCode)
	return exitCode, nil
}

// renderInvocation formats the child command line for tracing, quoting
// arguments the way a POSIX shell would want them.
func renderInvocation(bin string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, bin)
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}
