package systemprompt

// ContextProvider is an interface that defines the title and info of a context provider
type ContextProvider interface {
	Title() string
	Info() string
}

// Context is a fixed ContextProvider, e.g. the output of a finished stage
type Context struct {
	title string
	info  string
}

var _ ContextProvider = (*Context)(nil)

// NewContext returns a new Context
func NewContext(title, info string) *Context {
	return &Context{title: title, info: info}
}

func (c Context) Title() string {
	return c.title
}

func (c Context) Info() string {
	return c.info
}
