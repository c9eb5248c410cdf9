package render

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/template"
	"github.com/TopShelfBullard/rails/http/urls"
)

// A Gate accepts render and redirect requests for one action execution
// and enforces that at most one outcome is ever committed.
//
// A Gate is owned by a single in-flight request.
type Gate struct {
	engine   template.Renderer
	composer *urls.Composer
	state    *routes.RequestState
	outcome  Outcome
}

// NewGate constructs a *Gate for one action execution. composer may be
// nil when redirect targets are never parameter mappings; state may be
// nil when no route matched the request.
func NewGate(engine template.Renderer, composer *urls.Composer, state *routes.RequestState) *Gate {
	return &Gate{engine: engine, composer: composer, state: state}
}

// HasPerformed reports whether a render or redirect has been committed.
func (g *Gate) HasPerformed() bool { return g.outcome.Performed() }

// Outcome returns a read-only copy of the committed Outcome.
func (g *Gate) Outcome() Outcome { return g.outcome }

// Render resolves the Intent described by opts into a body and commits
// a rendered Outcome.
//
// Render fails with ErrAlreadyPerformed when an outcome was already
// committed, and with ErrMissingTemplate when a named template or
// layout does not exist and IgnoreMissing was not set.
func (g *Gate) Render(opts ...Opt) error {
	if g.outcome.Performed() {
		return fmt.Errorf("%w: render refused, an outcome exists", ErrAlreadyPerformed)
	}

	in := newIntent(opts)
	body, err := g.resolve(in)
	if err != nil {
		return err
	}

	g.outcome = Outcome{state: rendered, body: body, status: in.status}
	return nil
}

// RenderToString resolves the Intent described by opts into a string
// without committing an outcome; it never consumes the one-shot
// guarantee and may be called before or after Render.
func (g *Gate) RenderToString(opts ...Opt) (string, error) {
	body, err := g.resolve(newIntent(opts))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// RedirectTo commits a redirected Outcome aimed at target.
//
// target is a literal absolute URL, a root-relative path absolutized
// from the current request's scheme and host, or a parameter mapping
// resolved through the URL composer.
//
// RedirectTo fails with ErrAlreadyPerformed when an outcome was
// already committed.
func (g *Gate) RedirectTo(target any) error {
	if g.outcome.Performed() {
		return fmt.Errorf("%w: redirect refused, an outcome exists", ErrAlreadyPerformed)
	}

	resolved, err := g.resolveTarget(target)
	if err != nil {
		return err
	}

	g.outcome = Outcome{state: redirected, target: resolved}
	return nil
}

// EraseOutcome resets the Gate to idle, discarding any committed body.
func (g *Gate) EraseOutcome() { g.outcome = Outcome{} }

func (g *Gate) resolve(in *Intent) ([]byte, error) {
	var body []byte
	var err error

	switch in.kind {
	case kindNothing:
		body = []byte{}
	case kindText:
		body = []byte(in.text)
	case kindTemplate:
		if !g.engine.FileExists(in.tmpl) {
			if in.ignoreMissing {
				body = []byte{}
				break
			}

			return nil, missingTemplate(in.tmpl)
		}

		body, err = g.engine.RenderFile(in.tmpl, true, in.locals)
	case kindInline:
		body, err = g.engine.RenderInline(in.inlineKind, in.inlineSrc, in.locals)
	case kindPartial:
		body, err = g.engine.RenderPartial(in.partial, in.object, in.locals)
	case kindCollection:
		body, err = g.engine.RenderPartialCollection(in.partial, in.collection, in.spacer, in.locals)
	case kindFile:
		body, err = g.engine.RenderFile(in.file, in.bare, in.locals)
		if errors.Is(err, template.ErrNoTemplate) {
			if in.ignoreMissing {
				body, err = []byte{}, nil
				break
			}

			return nil, missingTemplate(in.file)
		}
	}

	if err != nil {
		return nil, err
	}

	if in.layout == "" {
		return body, nil
	}

	if !g.engine.FileExists(in.layout) {
		return nil, missingTemplate(in.layout)
	}

	bound := make(map[string]any, len(in.locals)+1)
	for k, v := range in.locals {
		bound[k] = v
	}
	bound["ContentForLayout"] = string(body)

	return g.engine.RenderFile(in.layout, true, bound)
}

func (g *Gate) resolveTarget(target any) (string, error) {
	if s, ok := target.(string); ok {
		if u, err := url.Parse(s); err == nil && u.Scheme != "" {
			return s, nil
		}

		if strings.HasPrefix(s, "/") {
			return g.absolutize(s), nil
		}

		return "", fmt.Errorf("cannot redirect to %q: neither absolute nor root-relative", s)
	}

	if g.composer == nil {
		return "", fmt.Errorf("cannot redirect to %T without a url composer", target)
	}

	resolved, err := g.composer.Resolve(target)
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(resolved, "/") {
		return g.absolutize(resolved), nil
	}

	return resolved, nil
}

func (g *Gate) absolutize(path string) string {
	if g.state == nil || g.state.Host == "" {
		return path
	}

	scheme := g.state.Scheme
	if scheme == "" {
		scheme = "http"
	}

	return scheme + "://" + g.state.Host + path
}

// missingTemplate distinguishes layouts from plain templates by the
// "layouts/" path convention.
func missingTemplate(fp string) error {
	kind := "template"
	if strings.Contains(fp, "layouts/") {
		kind = "layout"
	}

	return fmt.Errorf("%w: no %s at %q", ErrMissingTemplate, kind, fp)
}
