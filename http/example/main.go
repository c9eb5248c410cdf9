/*
Package main provides a toy example use of the rails http stack.

Run it, then visit http://localhost:3000/projects.
*/
package main

import (
	"embed"
	"io/fs"
	"log"
	"time"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/app"
	"github.com/TopShelfBullard/rails/http/dispatch"
	"github.com/TopShelfBullard/rails/http/render"
	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/template"
	"github.com/TopShelfBullard/rails/http/urls"
)

//go:embed tmpl
var files embed.FS

var projects = []string{"basecamp", "highrise", "campfire"}

func index(ctx *dispatch.Context) error {
	ctx.Assign("projects", projects)
	return ctx.Render()
}

func show(ctx *dispatch.Context) error {
	name := ctx.Params.Leaf("name")
	for _, p := range projects {
		if p == name {
			ctx.Assign("name", name)
			return ctx.Render(render.Layout("layouts/application"))
		}
	}

	return ctx.RedirectTo("/projects")
}

func main() {
	tmpls, err := fs.Sub(files, "tmpl")
	if err != nil {
		log.Fatal(err)
	}

	indexRoute, err := routes.NewRoute("/projects", map[string]string{
		"controller": "project",
		"action":     "index",
	})
	if err != nil {
		log.Fatal(err)
	}

	showRoute, err := routes.NewRoute("/projects/:name/:action", map[string]string{
		"controller": "project",
		"action":     "show",
	})
	if err != nil {
		log.Fatal(err)
	}

	table := routes.NewTable(indexRoute, showRoute)

	registry := dispatch.NewRegistry()
	_, err = registry.Register("project", map[string]dispatch.Action{
		"index": index,
		"show":  show,
	}, dispatch.WithDefaultURLOptions(func() urls.Options { return urls.Options{"only_path": true} }))
	if err != nil {
		log.Fatal(err)
	}

	engine := template.NewEngine(
		template.WithFS(tmpls),
		template.WithFn("stamp", func() string { return time.Now().Format(time.RFC822) }),
		template.WithFn("link", func(name string) string { return "/projects/" + name }),
	)

	a, err := app.New(
		app.WithEnv(rails.Development.String()),
		app.WithHandlers(registry),
		app.WithTemplateEngine(engine),
		app.WithRoutes(table),
	)
	if err != nil {
		log.Fatal(err)
	}

	log.Fatal(a.Run())
}
