// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var errKeyNotFound = errors.New("key not found")

func verbose() bool { return os.Getenv("SEEDKIT_VERBOSE") == "1" }

func debugf(format string, args ...any) {
	if verbose() {
		fmt.Fprintf(os.Stderr, "[DEBUG] keychain: "+format+"\n", args...)
	}
}

// securityBackend talks to the macOS keychain through the security command.
type securityBackend struct{}

func newSecurityBackend() (*securityBackend, error) {
	if _, err := exec.LookPath("security"); err != nil {
		return nil, fmt.Errorf("security command not found: %w", err)
	}
	return &securityBackend{}, nil
}

func (s *securityBackend) Set(key, value string) error {
	debugf("set %q (%d bytes)", key, len(value))
	if err := s.Delete(key); err != nil {
		debugf("delete before set: %v", err)
	}
	cmd := exec.Command("security", "add-generic-password", "-a", ServiceName, "-s", key, "-w", value, "-U")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("store %q in keychain: %s: %w", key, strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

func (s *securityBackend) Get(key string) (string, error) {
	debugf("get %q", key)
	cmd := exec.Command("security", "find-generic-password", "-a", ServiceName, "-s", key, "-w")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "could not be found") {
			return "", errKeyNotFound
		}
		return "", fmt.Errorf("read keychain: %s: %w", strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (s *securityBackend) Delete(key string) error {
	cmd := exec.Command("security", "delete-generic-password", "-a", ServiceName, "-s", key)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "could not be found") {
			return nil
		}
		return fmt.Errorf("delete from keychain: %s: %w", strings.TrimSpace(stderr.String()), err)
	}
	return nil
}
