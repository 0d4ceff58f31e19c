package composer

// Parent is implemented by nodes that have child nodes. It is optional; the
// evaluation does not need it, only tools inspecting a built tree do.
type Parent interface {
	Children() []any
}

// Walk visits node and its descendants depth-first. depth is zero for node.
// Returning false from visit skips the children of the visited node.
func Walk(node any, visit func(node any, depth int) bool) {
	walk(node, 0, visit)
}

func walk(node any, depth int, visit func(any, int) bool) {
	if node == nil || !visit(node, depth) {
		return
	}
	if p, ok := node.(Parent); ok {
		for _, c := range p.Children() {
			walk(c, depth+1, visit)
		}
	}
}
