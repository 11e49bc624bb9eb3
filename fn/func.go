package fn

// Body is the dynamic calling convention every Func is reduced to: a
// receiver (the calling context) and a positional argument list.
type Body func(recv any, args []any) (any, error)

// Handler is the body of a wrapper. base is the wrapped Func, unbound unless
// the wrapper was built with WrapBound; the handler supplies the receiver.
type Handler func(recv any, base *Func, args []any) (any, error)

// Func is a callable that remembers where it came from.
//
// Every combinator returns a new Func whose origin is the Func it was derived
// from, so Origin can always walk back to the root callable. Arity and
// parameter names are resolved against that chain.
type Func struct {
	body   Body
	origin *Func

	// impl is the Go function a root was lifted from, used for reflection.
	impl any
	name string

	arity     int
	hasArity  bool
	params    []string
	hasParams bool
}

// Option annotates a Func with metadata reflection cannot provide.
type Option func(*Func)

// WithArity declares the arity explicitly. It wins over anything reflected.
func WithArity(n int) Option {
	return func(f *Func) {
		f.arity = n
		f.hasArity = true
	}
}

// WithParams declares the formal parameter names explicitly.
func WithParams(names ...string) Option {
	return func(f *Func) {
		f.params = append([]string{}, names...)
		f.hasParams = true
	}
}

// WithName sets the name used when tracing.
func WithName(name string) Option {
	return func(f *Func) {
		f.name = name
	}
}

// New creates a root Func from a dynamic body.
func New(body Body, opts ...Option) *Func {
	f := &Func{body: body}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Annotate returns a wrapper of f carrying opts. The wrapper behaves exactly
// like f; only its metadata differs.
func (f *Func) Annotate(opts ...Option) *Func {
	d := f.derive(f.body)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (f *Func) derive(body Body) *Func {
	return &Func{body: body, origin: f}
}

// Call invokes f under recv with args.
func (f *Func) Call(recv any, args ...any) (any, error) {
	return f.Apply(recv, args)
}

// Apply invokes f under recv with an argument slice.
func (f *Func) Apply(recv any, args []any) (any, error) {
	if args == nil {
		args = []any{}
	}
	return f.body(recv, args)
}

// Invoke calls f with a nil receiver.
func (f *Func) Invoke(args ...any) (any, error) {
	return f.Apply(nil, args)
}

// Wrap returns a Func that hands each call to h together with f.
func (f *Func) Wrap(h Handler) *Func {
	return f.derive(func(recv any, args []any) (any, error) {
		return h(recv, f, args)
	})
}

// WrapBound is Wrap with the base handed to h already bound to boundRecv.
func (f *Func) WrapBound(h Handler, boundRecv any) *Func {
	bound := f.Bind(boundRecv)
	return f.derive(func(recv any, args []any) (any, error) {
		return h(recv, bound, args)
	})
}

// Bind returns a Func that always runs f under recv, whatever receiver it is called with.
func (f *Func) Bind(recv any) *Func {
	return f.derive(func(_ any, args []any) (any, error) {
		return f.Apply(recv, args)
	})
}

// Origin walks the chain of derived Funcs back to the root.
func (f *Func) Origin() *Func {
	origin := f
	for origin.origin != nil {
		origin = origin.origin
	}
	return origin
}

// Name returns the first name found walking from f to its origin, falling
// back to the runtime name of the lifted Go function. It is empty when no
// name is known.
func (f *Func) Name() string {
	for cur := f; cur != nil; cur = cur.origin {
		if cur.name != "" {
			return cur.name
		}
	}
	if impl := f.Origin().impl; impl != nil {
		return runtimeName(impl)
	}
	return ""
}

func (f *Func) String() string {
	if name := f.Name(); name != "" {
		return "fn.Func(" + name + ")"
	}
	return "fn.Func(anonymous)"
}

func concat(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
