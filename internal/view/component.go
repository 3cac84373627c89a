package view

// Component is the two-phase lifecycle every widget follows after mounting:
// Configure wires behavior once, RenderContent fills static content once.
type Component interface {
	Configure()
	RenderContent()
}

// Attach runs the lifecycle in order.
func Attach(c Component) {
	c.Configure()
	c.RenderContent()
}
