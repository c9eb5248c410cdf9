// Package dispatch selects and executes a named action on a registered
// handler for each incoming request.
//
// Handlers register an explicit table of named actions; at dispatch
// time the action named by the request's parameters is resolved
// against the handler's allowed set and invoked. An action produces at
// most one outcome through its render gate; an action that produces
// none falls through to an implicit render of the conventional
// "handler/action" template.
package dispatch
