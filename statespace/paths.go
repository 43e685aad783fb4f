package statespace

// AllPathsBetween lists every simple path from start to end as a sequence of
// state ids. The search is exhaustive and meant for diagnostics on small
// graphs. A path from a state to itself is just that state.
func (g *Graph) AllPathsBetween(start, end int) [][]int {
	if _, ok := g.State(start); !ok {
		return nil
	}
	if start == end {
		return [][]int{{start}}
	}
	var (
		paths   [][]int
		path    = []int{start}
		visited = map[int]bool{start: true}
	)
	var walk func(at int)
	walk = func(at int) {
		for _, next := range g.successors(at) {
			if visited[next] {
				continue
			}
			path = append(path, next)
			if next == end {
				paths = append(paths, append([]int(nil), path...))
			} else {
				visited[next] = true
				walk(next)
				visited[next] = false
			}
			path = path[:len(path)-1]
		}
	}
	walk(start)
	return paths
}

// successors lists the distinct destinations of at, in edge order.
func (g *Graph) successors(at int) []int {
	var (
		ids  []int
		seen = make(map[int]bool)
	)
	for _, e := range g.out[at] {
		if !seen[e.Dst] {
			seen[e.Dst] = true
			ids = append(ids, e.Dst)
		}
	}
	return ids
}
