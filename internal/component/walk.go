package component

// Walker enumerates every component reachable from a graph's root, excluding
// the root, each exactly once in first-seen breadth-first order. It is
// one-shot: walking again requires a new Walker.
type Walker struct {
	graph   Graph
	queue   []ID
	visited map[ID]bool
	current ID
	err     error
}

// Walk returns a Walker seeded with the root's direct dependencies.
// No edge is inspected until Next is called.
func Walk(g Graph) *Walker {
	return &Walker{
		graph:   g,
		visited: map[ID]bool{g.Root: true},
	}
}

// Next advances to the next unvisited component. It returns false when the
// walk is exhausted or an unresolved edge was found; check Err afterwards.
func (w *Walker) Next() bool {
	if w.err != nil {
		return false
	}
	if w.queue == nil {
		w.queue = []ID{}
		if !w.enqueue(w.graph.Root) {
			return false
		}
	}
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		if w.visited[id] {
			continue
		}
		w.visited[id] = true
		if !w.enqueue(id) {
			return false
		}
		w.current = id
		return true
	}
	return false
}

func (w *Walker) enqueue(from ID) bool {
	for _, edge := range w.graph.Nodes[from] {
		if !edge.Resolved {
			w.err = &GraphResolutionError{From: from, Edge: edge}
			w.queue = nil
			return false
		}
		if !w.visited[edge.Target] {
			w.queue = append(w.queue, edge.Target)
		}
	}
	return true
}

// ID returns the component produced by the last successful Next.
func (w *Walker) ID() ID {
	return w.current
}

// Err returns the first resolution error met during the walk.
func (w *Walker) Err() error {
	return w.err
}

// Collect drains a fresh walk of g. On error nothing is returned.
func Collect(g Graph) ([]ID, error) {
	w := Walk(g)
	var ids []ID
	for w.Next() {
		ids = append(ids, w.ID())
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
