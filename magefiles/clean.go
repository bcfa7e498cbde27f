//go:build mage

package main

import (
	"fmt"
	"os"
)

// Clean removes the build output.
func Clean() error {
	if err := os.RemoveAll(binDir); err != nil {
		return err
	}
	fmt.Println("Removed", binDir)
	return nil
}
