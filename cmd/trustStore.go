package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh/knownhosts"
)

// trustStore owns the directory of pinned host-key files: one file per
// (instance id, address) pair, created once and then only read. Stale pairs
// accumulate until the operator prunes them by hand. The directory is an
// explicit constructor argument so tests can point it at a throwaway
// location.
type trustStore struct {
	dir string
}

func newTrustStore(dir string) *trustStore {
	return &trustStore{dir: dir}
}

// pathFor renders the cache key. The path is a pure function of the
// (id, address) pair: distinct pairs never collide, and the same pair maps
// to the same file across runs, which is what makes re-running against an
// already-bootstrapped instance side-channel free.
func (ts *trustStore) pathFor(id instanceIdentity) string {
	return filepath.Join(ts.dir, fmt.Sprintf("pubkey-%s-%s", id.ID, id.Address))
}

// ensureTrust returns the path of a known_hosts file for the identity,
// creating it from the instance's console output on first contact.
//
// An existing file is returned as-is: no content check and no re-validation
// that the instance behind the pair is still the same one. If a future
// unrelated instance ever reused both the id and the address, it would be
// silently trusted. Accepted risk, kept on purpose: re-validating would
// reintroduce a console fetch on every run, and EC2 never reuses instance
// ids in practice.
func (ts *trustStore) ensureTrust(ctx context.Context, client consoleClient, id instanceIdentity) (string, error) {
	path := ts.pathFor(id)
	if _, err := os.Stat(path); err == nil {
		trace("Using cached trust record: %s", path)
		return path, nil
	}

	if err := os.MkdirAll(ts.dir, 0o700); err != nil {
		return "", fmt.Errorf("create trust dir: %w", err)
	}

	console, err := fetchConsoleOutput(ctx, client, id.ID)
	if err != nil {
		return "", err
	}
	block := extractHostKeys(console)
	if !block.found || len(block.keys) == 0 {
		return "", fmt.Errorf("%w: instance %s", errNoHostKeys, id.ID)
	}

	if err := ts.write(path, id.Address, block.keys); err != nil {
		return "", err
	}
	trace("Created new trust record: %s", path)
	for _, k := range block.keys {
		if fp := fingerprint(k); fp != "" {
			trace("Pinned %s", fp)
		}
	}
	// The record is published as extracted either way; this is an operator
	// signal, not a gate. A greedy multi-block match can carry marker or
	// noise lines that ssh will skip with a warning of its own.
	if _, err := knownhosts.New(path); err != nil {
		trace("Warning: trust record may not load cleanly as known_hosts: %v", err)
	}
	return path, nil
}

// write materializes the trust record: one "<address> <keyline>" per key, in
// extraction order. The content lands in a private temp file in the target
// directory and is renamed into place, so a crash mid-write or a concurrent
// bootstrap of the same pair can never leave a torn file behind; the loser
// of a rename race overwrites with an identical, complete file.
func (ts *trustStore) write(path, address string, keys []string) (err error) {
	tmp, err := os.CreateTemp(ts.dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("create trust record: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	for _, k := range keys {
		if _, err = fmt.Fprintf(tmp, "%s %s\n", address, k); err != nil {
			return fmt.Errorf("write trust record: %w", err)
		}
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync trust record: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close trust record: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish trust record: %w", err)
	}
	return nil
}
