package input

// Handler consumes an event and reports whether it claimed it
type Handler interface {
	HandleAction(ev Event) bool
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ev Event) bool

// HandleAction calls f(ev)
func (f HandlerFunc) HandleAction(ev Event) bool {
	return f(ev)
}

// Chain delivers events to its handlers in order until one claims it
type Chain struct {
	handlers []Handler
}

// NewChain creates a chain with the given handlers in priority order
func NewChain(handlers ...Handler) *Chain {
	c := &Chain{}
	for _, h := range handlers {
		c.Add(h)
	}
	return c
}

// Add appends a handler with the lowest priority so far
func (c *Chain) Add(h Handler) {
	if h != nil {
		c.handlers = append(c.handlers, h)
	}
}

// Dispatch returns true if any handler claimed the event
func (c *Chain) Dispatch(ev Event) bool {
	for _, h := range c.handlers {
		if h.HandleAction(ev) {
			return true
		}
	}
	return false
}

// Len returns the number of handlers
func (c *Chain) Len() int {
	return len(c.handlers)
}
