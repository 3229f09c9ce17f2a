//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the web server and tools.
func Build() error {
	if err := sh.RunV("go", "build", "-o", "bin/web", "./cmd/web"); err != nil {
		return err
	}
	if err := sh.RunV("go", "build", "-o", "bin/migrate", "./cmd/tools/migrate"); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-o", "bin/seed", "./cmd/tools/seed")
}

// Run starts the web server.
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./bin/web")
}

// Test runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Migrate applies the schema.
func Migrate() error {
	return sh.RunV("go", "run", "./cmd/tools/migrate")
}

// Seed loads the demo data.
func Seed() error {
	return sh.RunV("go", "run", "./cmd/tools/seed")
}
