package rails

import "sort"

type Key string

const (
	// CurrentRouteKey stashes the route state recognized for an HTTP request.
	CurrentRouteKey Key = "CurrentRouteKey"

	// IpAddrKey stashes the IP address of an HTTP request being handled by rails.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "rails context key: " + string(k)
}

// ByKey sorts a set of Keys lexicographically.
type ByKey []Key

func (ks ByKey) Len() int           { return len(ks) }
func (ks ByKey) Less(i, j int) bool { return ks[i] < ks[j] }
func (ks ByKey) Swap(i, j int)      { ks[i], ks[j] = ks[j], ks[i] }

// UniqueSort sorts the Keys and removes duplicate and zero-value entries.
func (ks ByKey) UniqueSort() ByKey {
	uniqued := make(ByKey, 0, len(ks))
	seen := make(map[Key]struct{}, len(ks))
	for _, k := range ks {
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		uniqued = append(uniqued, k)
	}

	sort.Sort(uniqued)
	return uniqued
}
