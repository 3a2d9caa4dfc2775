// Package module sequences a project's modules by import dependency,
// porting ParsedModules::sequence/find_cycle from module.rs onto
// gonum's directed-graph primitives.
package module

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"ulang/internal/errors"
)

// Recognised validator purposes (spec's closed, display-ordered set).
const (
	Spend    = "spend"
	Cert     = "cert"
	Mint     = "mint"
	Withdraw = "withdraw"
)

// ValidatorNames lists the recognised validator purposes in display
// order.
var ValidatorNames = [...]string{Spend, Cert, Mint, Withdraw}

// Graph is a module dependency graph: module name to its direct
// imports.
type Graph struct {
	deps map[string][]string
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{deps: make(map[string][]string)}
}

// AddModule records name's direct dependencies. Dependencies not
// themselves added via AddModule are silently ignored when building
// the graph, matching deps_for_graph's filter_map over known indices.
func (g *Graph) AddModule(name string, deps []string) {
	g.deps[name] = deps
}

// Sequence returns the project's modules in build order: a module
// never appears before one of its own dependencies. The underlying
// gonum edges run from dependency to dependent (the opposite of
// module.rs's module-to-dependency edges), so topo.Sort's natural
// visitation order is already the forward build order this returns —
// no reversal step is needed, unlike the Rust original's sequence.rev().
func (g *Graph) Sequence() ([]string, error) {
	names := make([]string, 0, len(g.deps))
	for name := range g.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[string]int64, len(names))
	values := make(map[int64]string, len(names))
	dg := simple.NewDirectedGraph()

	for i, name := range names {
		id := int64(i)
		ids[name] = id
		values[id] = name
		dg.AddNode(simple.Node(id))
	}

	for _, name := range names {
		from := ids[name]
		for _, dep := range g.deps[name] {
			to, ok := ids[dep]
			if !ok {
				continue
			}
			// dep -> module, so dependencies sort before dependents.
			dg.SetEdge(simple.Edge{F: simple.Node(to), T: simple.Node(from)})
		}
	}

	sorted, err := topo.Sort(dg)
	if err == nil {
		sequence := make([]string, len(sorted))
		for i, n := range sorted {
			sequence[i] = values[n.ID()]
		}
		return sequence, nil
	}

	unorderable, ok := err.(topo.Unorderable)
	if !ok || len(unorderable) == 0 {
		return nil, err
	}

	origin := unorderable[0][0].ID()
	var path []int64
	findCycle(origin, origin, dg, &path, map[int64]bool{})

	modules := make([]string, 0, len(path))
	for _, id := range path {
		modules = append(modules, values[id])
	}
	return nil, errors.ImportCycleError(modules)
}

// findCycle is a bounded depth-first search from origin back to
// itself along outgoing edges, pushing nodes onto path as the search
// returns — the same construction as module.rs's find_cycle.
func findCycle(origin, parent int64, g graph.Directed, path *[]int64, seen map[int64]bool) bool {
	seen[parent] = true

	it := g.From(parent)
	for it.Next() {
		node := it.Node().ID()

		if node == origin {
			*path = append(*path, node)
			return true
		}
		if seen[node] {
			continue
		}
		if findCycle(origin, node, g, path, seen) {
			*path = append(*path, node)
			return true
		}
	}
	return false
}
