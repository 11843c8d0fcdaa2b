package router

// History is a browser-like navigation stack. The zero value starts at the
// authors list.
type History struct {
	stack []Route
}

// Current returns the active route.
func (h *History) Current() Route {
	if len(h.stack) == 0 {
		return Resolve(PathAuthors)
	}
	return h.stack[len(h.stack)-1]
}

// Push resolves path and makes it current. Navigating to the current path
// again does not grow the stack.
func (h *History) Push(path string) Route {
	route := Resolve(path)
	if h.Current().Path == route.Path {
		return route
	}
	if len(h.stack) == 0 {
		h.stack = []Route{h.Current()}
	}
	h.stack = append(h.stack, route)
	return route
}

// Back pops the current route and returns the one below it. It reports
// false when already at the bottom.
func (h *History) Back() (Route, bool) {
	if len(h.stack) <= 1 {
		return h.Current(), false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.Current(), true
}

// Len returns the stack depth.
func (h *History) Len() int {
	if len(h.stack) == 0 {
		return 1
	}
	return len(h.stack)
}
