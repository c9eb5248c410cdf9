// Package template renders templates, inline sources, partials, and
// partial collections for the action dispatch core.
//
// The Engine resolves bare template paths like "project/dash" against
// an fs.FS using the framework extension, and treats files whose base
// name begins with an underscore as partials, which are never publicly
// renderable.
package template
