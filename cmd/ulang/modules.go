package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"ulang/internal/module"
)

// dependsPrefix is the only piece of module syntax this driver reads
// directly, since lexing and parsing a validator file is out of scope
// here: a module may declare its imports with a leading comment line
// of the form "-- depends: a, b" naming other module names by their
// path relative to the project root, without extension.
const dependsPrefix = "-- depends:"

// loadGraph walks lib/ and validators/ under root, treating every .ak
// file as a module named by its path relative to root (extension
// stripped), and reads its depends header if present.
func loadGraph(root string) (*module.Graph, error) {
	g := module.NewGraph()

	for _, dir := range []string{"lib", "validators"} {
		base := filepath.Join(root, dir)
		if _, err := os.Stat(base); err != nil {
			continue
		}

		err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".ak" {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(rel, ".ak")

			deps, err := readDepends(path)
			if err != nil {
				return err
			}
			g.AddModule(name, deps)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

func readDepends(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, nil
	}

	line := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(line, dependsPrefix) {
		return nil, nil
	}

	rest := strings.TrimPrefix(line, dependsPrefix)
	var deps []string
	for _, dep := range strings.Split(rest, ",") {
		dep = strings.TrimSpace(dep)
		if dep != "" {
			deps = append(deps, dep)
		}
	}
	return deps, nil
}
