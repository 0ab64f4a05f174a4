package resolve

import (
	"context"

	"github.com/warptools/buildorder/internal/ctxlog"
	"github.com/warptools/buildorder/pkg/buildorderapi"
	"github.com/warptools/buildorder/pkg/depgraph"
)

type color uint8

const (
	unvisited color = iota
	inProgress
	done
)

// Resolver computes build orders.  The zero value is ready to use.
type Resolver struct {
	// MaxDepth caps the length of the active dependency chain.
	// Zero means no cap; the traversal keeps its own stack, so depth costs heap, not goroutine stack.
	MaxDepth int
}

// BuildOrder resolves g with a zero Resolver and a background context.
//
// Errors:
//
//   - buildorder-error-cycle -- if g contains a cycle.
func BuildOrder(g depgraph.Graph) ([]depgraph.Name, error) {
	return (&Resolver{}).Resolve(context.Background(), g)
}

// Resolve returns every node of g in an order where each node comes after all of its dependencies.
//
// Top-level roots and each node's dependencies are both walked in lexical order,
// so the result depends only on the graph's contents, never on map iteration.
// Shared dependencies are emitted once, the first time any path finishes them.
//
// Either the whole order is returned or an error is; never a partial order.
// The context is checked between node visits.
//
// Errors:
//
//   - buildorder-error-cycle -- if a node is reached again while it's still on the active path.
//     The "node" detail names the re-entered node.
//   - buildorder-error-depth-exceeded -- if MaxDepth is set and a chain grows past it.
//   - buildorder-error-canceled -- if ctx is done before resolution finishes.
func (r *Resolver) Resolve(ctx context.Context, g depgraph.Graph) ([]depgraph.Name, error) {
	logger := ctxlog.FromContext(ctx)
	nodes := g.AllNodes()
	logger.Debug("resolve: starting", "node_count", nodes.Len())

	w := &walk{
		graph:    g,
		maxDepth: r.MaxDepth,
		colors:   make(map[depgraph.Name]color, nodes.Len()),
		order:    make([]depgraph.Name, 0, nodes.Len()),
	}
	for _, n := range nodes.Sorted() {
		if w.colors[n] == done {
			continue
		}
		if err := w.visit(ctx, n); err != nil {
			logger.Debug("resolve: failed", "root", string(n), "error", err)
			return nil, err
		}
	}
	logger.Debug("resolve: complete", "order_len", len(w.order))
	return w.order, nil
}

// walk is the state of a single resolution.  It's discarded when Resolve returns.
type walk struct {
	graph    depgraph.Graph
	maxDepth int

	colors map[depgraph.Name]color
	order  []depgraph.Name // append-only; post-order.
	stack  []frame
}

// frame is one node on the active path, plus how far through its dependencies we've gotten.
type frame struct {
	node depgraph.Name
	deps []depgraph.Name // sorted.
	next int
}

// visit does a depth-first post-order walk from root.
// The root must not already be in progress.
func (w *walk) visit(ctx context.Context, root depgraph.Name) error {
	if err := w.enter(root); err != nil {
		return err
	}
	for len(w.stack) > 0 {
		if err := ctx.Err(); err != nil {
			return buildorderapi.ErrorCanceled(err)
		}
		top := &w.stack[len(w.stack)-1]
		if top.next == len(top.deps) {
			w.colors[top.node] = done
			w.order = append(w.order, top.node)
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		dep := top.deps[top.next]
		top.next++
		switch w.colors[dep] {
		case inProgress:
			return buildorderapi.ErrorCycle(string(dep), w.cyclePath(dep))
		case done:
			continue
		}
		if err := w.enter(dep); err != nil {
			return err
		}
	}
	return nil
}

// enter marks n in progress and pushes its frame.
// Careful: this may reallocate the stack, so frame pointers taken before it are stale after.
func (w *walk) enter(n depgraph.Name) error {
	if w.maxDepth > 0 && len(w.stack) >= w.maxDepth {
		return buildorderapi.ErrorDepthExceeded(string(n), w.maxDepth)
	}
	w.colors[n] = inProgress
	w.stack = append(w.stack, frame{
		node: n,
		deps: w.graph.DependenciesOf(n).Sorted(),
	})
	return nil
}

// cyclePath reads the active path from the frame for n to the top of the stack, and closes it back on n.
func (w *walk) cyclePath(n depgraph.Name) []string {
	start := len(w.stack) - 1
	for start > 0 && w.stack[start].node != n {
		start--
	}
	path := make([]string, 0, len(w.stack)-start+1)
	for _, f := range w.stack[start:] {
		path = append(path, string(f.node))
	}
	return append(path, string(n))
}
