package template

import (
	"bytes"
	"fmt"
	html "html/template"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	text "text/template"
)

// Ext is the framework-chosen extension appended to bare template paths.
const Ext = ".html.tmpl"

// Inline source kinds accepted by RenderInline.
const (
	KindHTML = "html"
	KindText = "text"
)

// The Renderer interface is what action dispatch consumes to turn
// render intents into bodies.
type Renderer interface {
	// RenderFile renders the template at fp with locals bound as the
	// template's data. When bare is true, fp is a bare template path
	// resolved with Ext; otherwise fp names the file exactly.
	RenderFile(fp string, bare bool, locals map[string]any) ([]byte, error)

	// RenderInline renders src, of the given kind, with locals.
	RenderInline(kind, src string, locals map[string]any) ([]byte, error)

	// RenderPartial renders the "_"-prefixed template for name,
	// binding obj under the "Object" local.
	RenderPartial(name string, obj any, locals map[string]any) ([]byte, error)

	// RenderPartialCollection renders the partial for name once per
	// element of collection, joined by spacer.
	RenderPartialCollection(name string, collection []any, spacer string, locals map[string]any) ([]byte, error)

	// FileExists reports whether a template exists at the bare path fp.
	FileExists(fp string) bool

	// FilePublic reports whether the template at fp may be rendered
	// directly, without an action asking for it.
	FilePublic(fp string) bool
}

// An Engine implements Renderer over an fs.FS.
//
// An Engine is built once during application setup and read
// concurrently afterwards.
type Engine struct {
	fs   fs.FS
	fns  html.FuncMap
	pool *sync.Pool
}

// The EngineOptFn applies functional options to an *Engine when constructing it.
type EngineOptFn func(*Engine)

// WithFS sets the filesystem templates are resolved against.
func WithFS(filesys fs.FS) EngineOptFn {
	return func(e *Engine) {
		e.fs = filesys
	}
}

// WithFn encloses a named function so it can be added to an *Engine's function map.
func WithFn(name string, fn any) EngineOptFn {
	return func(e *Engine) {
		e.fns[name] = fn
	}
}

// NewEngine constructs an *Engine with the provided functional options.
//
// Templates resolve against the current directory unless WithFS
// provides another filesystem.
func NewEngine(opts ...EngineOptFn) *Engine {
	e := &Engine{
		fns:  make(html.FuncMap),
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.fs == nil {
		e.fs = os.DirFS(".")
	}

	return e
}

func (e *Engine) RenderFile(fp string, bare bool, locals map[string]any) ([]byte, error) {
	if bare {
		fp = resolve(fp)
	}

	src, err := fs.ReadFile(e.fs, fp)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrNoTemplate, fp, err)
	}

	return e.execute(path.Base(fp), string(src), locals)
}

func (e *Engine) RenderInline(kind, src string, locals map[string]any) ([]byte, error) {
	switch kind {
	case KindHTML:
		return e.execute("inline", src, locals)
	case KindText:
		tmpl, err := text.New("inline").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("cannot parse inline source: %w", err)
		}

		return e.run(func(b *bytes.Buffer) error { return tmpl.Execute(b, locals) })
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func (e *Engine) RenderPartial(name string, obj any, locals map[string]any) ([]byte, error) {
	bound := make(map[string]any, len(locals)+1)
	for k, v := range locals {
		bound[k] = v
	}
	bound["Object"] = obj

	return e.RenderFile(partialPath(name), false, bound)
}

func (e *Engine) RenderPartialCollection(name string, collection []any, spacer string, locals map[string]any) ([]byte, error) {
	rendered := make([]string, 0, len(collection))
	for i, obj := range collection {
		bound := make(map[string]any, len(locals)+2)
		for k, v := range locals {
			bound[k] = v
		}
		bound["Object"] = obj
		bound["Counter"] = i

		b, err := e.RenderFile(partialPath(name), false, bound)
		if err != nil {
			return nil, err
		}

		rendered = append(rendered, string(b))
	}

	return []byte(strings.Join(rendered, spacer)), nil
}

func (e *Engine) FileExists(fp string) bool {
	_, err := fs.Stat(e.fs, resolve(fp))
	return err == nil
}

func (e *Engine) FilePublic(fp string) bool {
	return !strings.HasPrefix(path.Base(fp), "_")
}

func (e *Engine) execute(name, src string, locals map[string]any) ([]byte, error) {
	tmpl, err := html.New(name).Funcs(e.fns).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", name, err)
	}

	return e.run(func(b *bytes.Buffer) error { return tmpl.Execute(b, locals) })
}

func (e *Engine) run(exec func(*bytes.Buffer) error) ([]byte, error) {
	b := e.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer e.pool.Put(b)

	if err := exec(b); err != nil {
		return nil, err
	}

	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out, nil
}

// resolve appends Ext to a bare template path that does not carry it.
func resolve(fp string) string {
	if strings.HasSuffix(fp, Ext) {
		return fp
	}

	return fp + Ext
}

// partialPath maps "comments/comment" to "comments/_comment" plus Ext.
func partialPath(name string) string {
	dir, base := path.Split(name)
	return resolve(dir + "_" + base)
}
