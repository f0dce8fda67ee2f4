// Package cmd implements the ec2ssh command-line interface.
//
// The package wires a single cobra root command through three stages:
// resolver.go maps an instance Name tag to an instance id and reachable
// address, trustStore.go materializes the instance's console-advertised SSH
// host keys into an address-scoped known_hosts file, and launch.go runs the
// system ssh client pinned to that file and propagates its exit status.
//
// New contributors should start by reading rootCmd.go to see how the stages
// compose, then hostKeys.go for the console-output marker-block parser that
// makes the trust bootstrap work, and trustStore.go for the cache-key and
// write semantics the security property depends on.
package cmd
