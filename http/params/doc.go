// Package params normalizes flat, bracket-nested request parameters
// into an ordered, recursive key/value structure.
//
// A key like "post[address][street]" becomes a Bag holding a Bag holding
// a string leaf. All leaves are strings; no type coercion is performed.
package params
