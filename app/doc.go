/*
Package app manages and exposes all components of a rails application to one another.

An App is constructed from functional options.
Default options are applied first and fill in whatever the caller's options leave unset,
so the smallest possible program mounts a handler registry and starts serving:

	registry := dispatch.NewRegistry()
	registry.Register("project", map[string]dispatch.Action{
		"index": func(ctx *dispatch.Context) error { return ctx.Render() },
	})

	a, err := app.New(app.WithHandlers(registry))
	if err != nil {
		log.Fatal(err)
	}

	log.Fatal(a.Run())

Configuration is read from the environment, loaded from a .env file if one exists.
Confer default.go for the available env vars.
*/
package app
