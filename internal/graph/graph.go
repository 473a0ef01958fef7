package graph

import "dbmigrate/internal/change"

// Graph is a directed dependency graph over change names. An edge A -> B
// records that B depends on (or sources from) A, so A must be applied first.
//
// Every name that appears anywhere, as a node or as an edge endpoint, is a
// key; a node with no dependents still has an entry with an empty successor
// list. Key insertion order is preserved so sorting is deterministic.
type Graph struct {
	names      []string
	successors map[string][]string
}

func New() *Graph {
	return &Graph{successors: make(map[string][]string)}
}

// Add inserts a node with no successors if it is not already present.
func (g *Graph) Add(name string) {
	if _, ok := g.successors[name]; ok {
		return
	}
	g.names = append(g.names, name)
	g.successors[name] = nil
}

// AddEdge records that `to` depends on `from`. Both endpoints become nodes;
// `from` need not correspond to a known change file, which models virtual
// prerequisites such as externally managed objects.
func (g *Graph) AddEdge(from, to string) {
	g.Add(from)
	g.Add(to)
	g.successors[from] = append(g.successors[from], to)
}

// Names returns all node names in insertion order.
func (g *Graph) Names() []string {
	return g.names
}

// Successors returns the dependents of name, in edge insertion order.
func (g *Graph) Successors(name string) []string {
	return g.successors[name]
}

func (g *Graph) Len() int {
	return len(g.names)
}

// Build constructs the dependency-only graph over all given scripts.
func Build(scripts []change.Script) *Graph {
	g := New()
	for _, s := range scripts {
		g.Add(s.Name)
		for _, dep := range s.DependsOn {
			g.AddEdge(dep, s.Name)
		}
	}
	return g
}

// BuildWithSources constructs the graph over both depends and sources
// declarations.
func BuildWithSources(scripts []change.Script) *Graph {
	g := New()
	for _, s := range scripts {
		g.Add(s.Name)
		for _, dep := range s.DependsOn {
			g.AddEdge(dep, s.Name)
		}
		for _, src := range s.Sources {
			g.AddEdge(src, s.Name)
		}
	}
	return g
}
