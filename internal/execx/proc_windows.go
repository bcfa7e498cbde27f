// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

//go:build windows

package execx

import "os/exec"

// setProcGroup is a no-op: there are no POSIX process groups on Windows.
func setProcGroup(c *exec.Cmd) {}

// terminate kills the child directly. Windows has no SIGTERM equivalent
// for console children started this way.
func terminate(c *exec.Cmd) error {
	if c.Process == nil {
		return nil
	}
	return c.Process.Kill()
}
