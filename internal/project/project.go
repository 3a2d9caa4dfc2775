// Package project implements the validator project skeleton generator,
// ported from cmd/new.rs: lib/<name>/, an optional validators/, a
// README, a default manifest, and a .gitignore, refusing to run if the
// target directory already exists.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"

	"ulang/internal/config"
	"ulang/internal/errors"
)

// readmeTemplate is the body new.rs's readme() writes, trimmed of the Gleam
// validator source sample (there is no validator syntax at this layer)
// but keeping the same structure and the spec's recognised validator
// names.
const readmeTemplate = `# %s

Write validators in the %s folder, and supporting functions in the %s
folder.

Validators are named after their purpose, so one of:

- spend
- cert
- mint
- withdraw

## Building

	ulang build

## Checking

	ulang check
`

// gitignore is byte-for-byte the pattern set new.rs's gitignore()
// writes.
const gitignore = `# compilation artifacts
artifacts/
# working directory
build/
# default documentation export
docs/
`

// New scaffolds a fresh project in a new directory under the current
// directory, named after the snake_case form of name. libOnly skips
// the validators/ folder, mirroring --lib.
func New(name string, libOnly bool) error {
	repo := strcase.ToSnake(name)
	root := repo

	if _, err := os.Stat(root); err == nil {
		return errors.ProjectExistsError(repo)
	}

	if err := createLibFolder(root, repo); err != nil {
		return err
	}

	if !libOnly {
		if err := os.MkdirAll(filepath.Join(root, "validators"), 0o755); err != nil {
			return fmt.Errorf("project: %w", err)
		}
	}

	if err := writeReadme(root, repo); err != nil {
		return err
	}

	if err := config.Default(repo).Save(root); err != nil {
		return err
	}

	return writeGitignore(root)
}

func createLibFolder(root, repo string) error {
	lib := filepath.Join(root, "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(lib, repo), 0o755); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	return nil
}

func writeReadme(root, repo string) error {
	body := fmt.Sprintf(readmeTemplate, repo, "`validators`", "`lib`")
	return os.WriteFile(filepath.Join(root, "README.md"), []byte(body), 0o644)
}

func writeGitignore(root string) error {
	return os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0o644)
}
