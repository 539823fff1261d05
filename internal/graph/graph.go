package graph

import (
	"sort"
	"sync"

	"github.com/spigell/skillmatch/internal/skills"
)

const (
	// DefaultDepth is the expansion depth used for query keywords.
	DefaultDepth = 2

	MinWeight = 1
	MaxWeight = 3
)

// Edges is a directed edge table: skill -> related skill -> weight.
type Edges map[string]map[string]int

// Graph is a symmetric weighted adjacency of skill tokens. It is immutable
// after New and safe for concurrent use.
type Graph struct {
	adj map[string]map[string]int
}

// New builds a symmetric graph from a directed edge table. Every skill is
// normalized, weights are clamped into [MinWeight, MaxWeight] and self edges
// are dropped. Listing a pair in both directions with different weights keeps
// the larger one on both sides.
func New(edges Edges) *Graph {
	g := &Graph{adj: make(map[string]map[string]int, len(edges)*2)}

	for from, related := range edges {
		a := skills.Normalize(from)
		if a == "" {
			continue
		}
		for to, w := range related {
			b := skills.Normalize(to)
			if b == "" || a == b {
				continue
			}
			w = clampWeight(w)
			g.link(a, b, w)
			g.link(b, a, w)
		}
	}

	return g
}

func (g *Graph) link(a, b string, w int) {
	n, ok := g.adj[a]
	if !ok {
		n = make(map[string]int)
		g.adj[a] = n
	}
	if n[b] < w {
		n[b] = w
	}
}

func clampWeight(w int) int {
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}

var (
	defaultGraph     *Graph
	defaultGraphOnce sync.Once
)

// Default returns the graph built from DefaultEdges, constructed on first use.
func Default() *Graph {
	defaultGraphOnce.Do(func() {
		defaultGraph = New(DefaultEdges())
	})
	return defaultGraph
}

// Merge returns a new table holding base and extra. Weights from extra
// replace those of base for the same directed pair.
func Merge(base, extra Edges) Edges {
	out := make(Edges, len(base)+len(extra))
	for _, src := range []Edges{base, extra} {
		for from, related := range src {
			n, ok := out[from]
			if !ok {
				n = make(map[string]int, len(related))
				out[from] = n
			}
			for to, w := range related {
				n[to] = w
			}
		}
	}
	return out
}

// Len returns the number of skills with at least one edge.
func (g *Graph) Len() int {
	return len(g.adj)
}

// Neighbors returns a copy of the direct neighbors of skill with their weights.
func (g *Graph) Neighbors(skill string) map[string]int {
	n := g.adj[skills.Normalize(skill)]
	out := make(map[string]int, len(n))
	for k, w := range n {
		out[k] = w
	}
	return out
}

// Weight returns the weight of the edge between a and b.
func (g *Graph) Weight(a, b string) (int, bool) {
	w, ok := g.adj[skills.Normalize(a)][skills.Normalize(b)]
	return w, ok
}

// Expand returns skill and every skill reachable from it in at most maxDepth
// hops, sorted. Weights play no part in the traversal. An unknown skill
// expands to itself only and an empty one to nothing.
func (g *Graph) Expand(skill string, maxDepth int) []string {
	start := skills.Normalize(skill)
	if start == "" {
		return nil
	}

	visited := map[string]struct{}{start: {}}
	g.walk(start, maxDepth, visited)

	return sortedKeys(visited)
}

// ExpandAll expands every skill and returns the union, sorted.
func (g *Graph) ExpandAll(list []string, maxDepth int) []string {
	union := make(map[string]struct{})
	for _, s := range list {
		start := skills.Normalize(s)
		if start == "" {
			continue
		}
		visited := map[string]struct{}{start: {}}
		g.walk(start, maxDepth, visited)
		for k := range visited {
			union[k] = struct{}{}
		}
	}
	return sortedKeys(union)
}

// walk runs a breadth-first traversal from start adding every reached node to
// visited. Nodes already in visited are not expanded again.
func (g *Graph) walk(start string, maxDepth int, visited map[string]struct{}) {
	frontier := []string{start}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, node := range frontier {
			for neighbor := range g.adj[node] {
				if _, seen := visited[neighbor]; seen {
					continue
				}
				visited[neighbor] = struct{}{}
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
