// Package session lightly wraps gorilla/sessions so the dispatch core
// can hand each request a session handle without owning a session
// store. Flash messages stored here are
// popped through the dispatch Context.
package session
