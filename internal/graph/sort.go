package graph

import "strings"

// CycleError reports that a topological order does not exist. Remaining
// holds every node whose prerequisites could not be satisfied; at least one
// cycle runs through them.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return "dependency graph contains cycles: " + strings.Join(e.Remaining, ", ")
}

// Sort returns a topological order over all nodes of g: every prerequisite
// precedes its dependents. The order is deterministic for a given build
// order but not unique where nodes genuinely tie.
//
// Kahn's algorithm with a LIFO work stack. If the stack drains while nodes
// still have unsatisfied prerequisites the graph is cyclic and a *CycleError
// is returned instead of a partial order.
func Sort(g *Graph) ([]string, error) {
	counts := predecessorCounts(g)

	var stack []string
	for _, name := range g.Names() {
		if counts[name] == 0 {
			stack = append(stack, name)
		}
	}

	order := make([]string, 0, g.Len())
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, current)
		for _, succ := range g.Successors(current) {
			counts[succ]--
			if counts[succ] == 0 {
				stack = append(stack, succ)
			}
		}
	}

	if len(order) != g.Len() {
		var remaining []string
		for _, name := range g.Names() {
			if counts[name] != 0 {
				remaining = append(remaining, name)
			}
		}
		return nil, &CycleError{Remaining: remaining}
	}
	return order, nil
}

func predecessorCounts(g *Graph) map[string]int {
	counts := make(map[string]int, g.Len())
	for _, name := range g.Names() {
		counts[name] = 0
	}
	for _, name := range g.Names() {
		for _, succ := range g.Successors(name) {
			counts[succ]++
		}
	}
	return counts
}
