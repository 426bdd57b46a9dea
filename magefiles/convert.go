//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert turns every markdown file under notes/ into a notebook under
// notebooks/, rebuilding the CLI first.
func Convert() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "convert",
		"--batch", "notes", "--out-dir", "notebooks", "--force")
}
