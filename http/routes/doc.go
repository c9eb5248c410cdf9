// Package routes holds a registered grammar of path segment templates
// and resolves it in both directions: generating a path from a
// parameter set and recognizing a request path into positionally
// ordered parameter slots.
//
// A pattern such as "/clients/:client_name/:project_name/:controller/:action"
// declares literal and named segments. Named segments may carry default
// values; trailing segments whose values are absent are omitted from
// generated paths and filled from defaults during recognition.
package routes
