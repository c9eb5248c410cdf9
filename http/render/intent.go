package render

// DefaultStatus is the status line a render commits with when no
// Status option overrides it.
const DefaultStatus = "200 OK"

type kind int

const (
	kindNothing kind = iota
	kindText
	kindTemplate
	kindInline
	kindPartial
	kindCollection
	kindFile
)

// An Intent describes what a render call should produce before it is
// normalized to a body. Construct one implicitly by passing Opts to
// [Gate.Render] or [Gate.RenderToString].
type Intent struct {
	kind   kind
	status string
	locals map[string]any
	layout string

	ignoreMissing bool

	text string

	tmpl string

	inlineKind string
	inlineSrc  string

	partial string
	object  any

	collection []any
	spacer     string

	file string
	bare bool
}

// An Opt configures the Intent a render call resolves.
type Opt func(*Intent)

func newIntent(opts []Opt) *Intent {
	in := &Intent{status: DefaultStatus}
	for _, opt := range opts {
		opt(in)
	}

	return in
}

// Text renders s verbatim as the response body.
func Text(s string) Opt {
	return func(in *Intent) {
		in.kind = kindText
		in.text = s
	}
}

// Template renders the named template, a bare path like "project/dash".
func Template(fp string) Opt {
	return func(in *Intent) {
		in.kind = kindTemplate
		in.tmpl = fp
	}
}

// Inline renders src, of the given kind, as the template source itself.
func Inline(kind, src string) Opt {
	return func(in *Intent) {
		in.kind = kindInline
		in.inlineKind = kind
		in.inlineSrc = src
	}
}

// Partial renders the single partial for name with obj bound to it.
func Partial(name string, obj any) Opt {
	return func(in *Intent) {
		in.kind = kindPartial
		in.partial = name
		in.object = obj
	}
}

// PartialCollection renders the partial for name once per element of
// collection, joined by spacer.
func PartialCollection(name string, collection []any, spacer string) Opt {
	return func(in *Intent) {
		in.kind = kindCollection
		in.partial = name
		in.collection = collection
		in.spacer = spacer
	}
}

// File renders the file at fp. When bare is true, fp is resolved with
// the framework template extension.
func File(fp string, bare bool) Opt {
	return func(in *Intent) {
		in.kind = kindFile
		in.file = fp
		in.bare = bare
	}
}

// Nothing renders an empty body, committing only the status.
func Nothing() Opt {
	return func(in *Intent) {
		in.kind = kindNothing
	}
}

// Status overrides the status line the render commits with.
func Status(s string) Opt {
	return func(in *Intent) {
		in.status = s
	}
}

// Locals binds the given values as template data.
func Locals(locals map[string]any) Opt {
	return func(in *Intent) {
		in.locals = locals
	}
}

// Layout wraps the rendered body in the layout template at fp,
// bound under the "ContentForLayout" local.
func Layout(fp string) Opt {
	return func(in *Intent) {
		in.layout = fp
	}
}

// IgnoreMissing renders an empty body instead of failing when a named
// template does not exist.
func IgnoreMissing() Opt {
	return func(in *Intent) {
		in.ignoreMissing = true
	}
}
