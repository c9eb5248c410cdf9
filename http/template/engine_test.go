package template_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/TopShelfBullard/rails/http/template"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"project/dash.html.tmpl":     {Data: []byte("<h1>{{.title}}</h1>")},
		"project/_item.html.tmpl":    {Data: []byte("<li>{{.Object}}</li>")},
		"project/_counted.html.tmpl": {Data: []byte("{{.Counter}}:{{.Object}}")},
		"layouts/standard.html.tmpl": {Data: []byte("<html>{{.title}}</html>")},
	}
}

func TestEngineRenderFile(t *testing.T) {
	e := template.NewEngine(template.WithFS(testFS()))

	t.Run("Bare-Path", func(t *testing.T) {
		b, err := e.RenderFile("project/dash", true, map[string]any{"title": "Dash"})
		require.NoError(t, err)
		require.Equal(t, "<h1>Dash</h1>", string(b))
	})

	t.Run("Exact-Path", func(t *testing.T) {
		b, err := e.RenderFile("project/dash.html.tmpl", false, map[string]any{"title": "Dash"})
		require.NoError(t, err)
		require.Equal(t, "<h1>Dash</h1>", string(b))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := e.RenderFile("project/bogus", true, nil)
		require.ErrorIs(t, err, template.ErrNoTemplate)
	})

	t.Run("Escapes", func(t *testing.T) {
		b, err := e.RenderFile("project/dash", true, map[string]any{"title": "<script>"})
		require.NoError(t, err)
		require.Equal(t, "<h1>&lt;script&gt;</h1>", string(b))
	})
}

func TestEngineRenderInline(t *testing.T) {
	e := template.NewEngine()

	tcs := []struct {
		name        string
		kind        string
		src         string
		expected    string
		expectedErr error
	}{
		{"HTML", template.KindHTML, "hello {{.who}}", "hello world", nil},
		{"Text-No-Escaping", template.KindText, "{{.who}} & co", "world & co", nil},
		{"Unknown-Kind", "haml", "x", "", template.ErrUnknownKind},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			b, err := e.RenderInline(tc.kind, tc.src, map[string]any{"who": "world"})
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, string(b))
		})
	}
}

func TestEngineRenderPartial(t *testing.T) {
	e := template.NewEngine(template.WithFS(testFS()))

	b, err := e.RenderPartial("project/item", "first", nil)

	require.NoError(t, err)
	require.Equal(t, "<li>first</li>", string(b))
}

func TestEngineRenderPartialCollection(t *testing.T) {
	e := template.NewEngine(template.WithFS(testFS()))

	t.Run("Spacer", func(t *testing.T) {
		b, err := e.RenderPartialCollection("project/item", []any{"a", "b"}, "\n", nil)
		require.NoError(t, err)
		require.Equal(t, "<li>a</li>\n<li>b</li>", string(b))
	})

	t.Run("Counter", func(t *testing.T) {
		b, err := e.RenderPartialCollection("project/counted", []any{"a", "b", "c"}, "|", nil)
		require.NoError(t, err)
		require.Equal(t, "0:a|1:b|2:c", string(b))
	})

	t.Run("Empty", func(t *testing.T) {
		b, err := e.RenderPartialCollection("project/item", nil, "|", nil)
		require.NoError(t, err)
		require.Empty(t, string(b))
	})
}

func TestEngineFileChecks(t *testing.T) {
	e := template.NewEngine(template.WithFS(testFS()))

	require.True(t, e.FileExists("project/dash"))
	require.False(t, e.FileExists("project/bogus"))

	require.True(t, e.FilePublic("project/dash"))
	require.False(t, e.FilePublic("project/_item"))
}

func TestEngineWithFn(t *testing.T) {
	e := template.NewEngine(template.WithFn("upper", strings.ToUpper))

	b, err := e.RenderInline(template.KindHTML, `{{upper .who}}`, map[string]any{"who": "world"})

	require.NoError(t, err)
	require.Equal(t, "WORLD", string(b))
}
