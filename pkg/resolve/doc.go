/*
	The 'resolve' package turns a dependency graph into a build order.

	It's a depth-first walk with three colors per node:
	unvisited, in progress (on the path currently being explored), and done.
	Meeting a done node again is a shared dependency and costs nothing;
	meeting an in-progress node again means the path has looped back on itself,
	and resolution stops with a cycle error naming that node.

	Every choice point is taken in lexical order of names,
	so the same graph always yields the same order no matter how it was assembled.
	Nodes are emitted post-order: a node only appears once everything it depends on already has.
*/
package resolve
