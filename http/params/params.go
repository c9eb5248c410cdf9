package params

import (
	"net/url"
	"sort"
	"strings"
)

// A Pair is one flat key/value parameter as received from the transport layer.
type Pair struct {
	Key string
	Val string
}

// A Value is either a string leaf or a nested *Bag, never both.
type Value struct {
	str string
	bag *Bag
}

// StringValue wraps a string leaf in a Value.
func StringValue(s string) Value { return Value{str: s} }

// BagValue wraps a nested *Bag in a Value.
func BagValue(b *Bag) Value { return Value{bag: b} }

// String unwraps the string leaf held by the Value, if it holds one.
func (v Value) String() (string, bool) {
	if v.bag != nil {
		return "", false
	}

	return v.str, true
}

// Bag unwraps the nested *Bag held by the Value, if it holds one.
func (v Value) Bag() (*Bag, bool) {
	if v.bag == nil {
		return nil, false
	}

	return v.bag, true
}

// A Bag is an insertion-ordered mapping of string keys to Values.
//
// A Bag is owned by a single in-flight request and is not safe for
// concurrent use.
type Bag struct {
	keys []string
	vals map[string]Value
}

// New constructs an empty *Bag.
func New() *Bag {
	return &Bag{vals: make(map[string]Value)}
}

// Parse constructs a *Bag from flat pairs whose keys may use bracket
// notation. The nested structure produced does not depend on the order
// pairs appear in; when two pairs write the same leaf, the later one wins.
func Parse(pairs []Pair) *Bag {
	b := New()
	for _, p := range pairs {
		b.Set(p.Key, p.Val)
	}

	return b
}

// ParseValues constructs a *Bag from url.Values,
// such as *http.Request.Form or a query string.
// Keys are visited in sorted order so repeated parses of the same
// values insert keys identically.
func ParseValues(vals url.Values) *Bag {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := New()
	for _, k := range keys {
		for _, v := range vals[k] {
			b.Set(k, v)
		}
	}

	return b
}

// Set inserts val under key, creating nested Bags for each bracketed
// segment of key. Setting through a key currently holding a string leaf
// replaces the leaf with a nested Bag.
func (b *Bag) Set(key, val string) {
	open := strings.Index(key, "[")
	if open < 0 {
		b.put(key, StringValue(val))
		return
	}

	head, rest := key[:open], key[open+1:]
	closing := strings.Index(rest, "]")
	if closing < 0 {
		// Unterminated bracket; treat the whole key as a leaf.
		b.put(key, StringValue(val))
		return
	}

	child, ok := b.childBag(head)
	if !ok {
		child = New()
		b.put(head, BagValue(child))
	}

	child.Set(rest[:closing]+rest[closing+1:], val)
}

// Get retrieves the Value stored under the top-level key.
func (b *Bag) Get(key string) (Value, bool) {
	v, ok := b.vals[key]
	return v, ok
}

// Fetch walks nested Bags along path, returning the Value at the end of it.
func (b *Bag) Fetch(path ...string) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}

	cur := b
	for _, key := range path[:len(path)-1] {
		child, ok := cur.childBag(key)
		if !ok {
			return Value{}, false
		}

		cur = child
	}

	return cur.Get(path[len(path)-1])
}

// Leaf retrieves the string leaf under the top-level key,
// returning "" when the key is absent or holds a nested Bag.
func (b *Bag) Leaf(key string) string {
	v, ok := b.Get(key)
	if !ok {
		return ""
	}

	s, _ := v.String()
	return s
}

// Keys returns the top-level keys in insertion order.
func (b *Bag) Keys() []string {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// Len reports the number of top-level keys.
func (b *Bag) Len() int { return len(b.keys) }

// Flatten converts the Bag back into flat pairs using bracket notation,
// suitable for reparsing with Parse.
func (b *Bag) Flatten() []Pair {
	pairs := make([]Pair, 0, len(b.keys))
	for _, k := range b.keys {
		v := b.vals[k]
		if child, ok := v.Bag(); ok {
			for _, p := range child.Flatten() {
				nested := p.Key
				if open := strings.Index(nested, "["); open >= 0 {
					nested = nested[:open] + "]" + nested[open:]
				} else {
					nested += "]"
				}

				pairs = append(pairs, Pair{Key: k + "[" + nested, Val: p.Val})
			}
			continue
		}

		s, _ := v.String()
		pairs = append(pairs, Pair{Key: k, Val: s})
	}

	return pairs
}

func (b *Bag) childBag(key string) (*Bag, bool) {
	v, ok := b.vals[key]
	if !ok {
		return nil, false
	}

	return v.Bag()
}

func (b *Bag) put(key string, v Value) {
	if _, ok := b.vals[key]; !ok {
		b.keys = append(b.keys, key)
	}

	b.vals[key] = v
}
