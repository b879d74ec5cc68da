// Package resource shapes domain values into API payloads.
//
// A Transformer decides exactly which fields reach the client:
//
//	var AccountResource resource.Transformer[models.Account] = func(a models.Account) resource.Map {
//	    return resource.Map{"name": a.Name, "email": a.Email}
//	}
//
//	response.Success(w, resource.One(AccountResource, acc))
//	response.Success(w, resource.Collection(OrderResource, orders).WithMeta(resource.Map{"count": n}))
package resource

// Map is the output of a Transformer.
type Map = map[string]any

// Transformer converts one value into a Map.
type Transformer[T any] func(T) Map

// One transforms a single value.
func One[T any](t Transformer[T], v T) Map {
	return t(v)
}

// Many transforms every item. The result is never nil so it encodes as [].
func Many[T any](t Transformer[T], items []T) []Map {
	out := make([]Map, 0, len(items))
	for _, it := range items {
		out = append(out, t(it))
	}
	return out
}

// List is a transformed collection with optional metadata.
type List struct {
	Items []Map `json:"items"`
	Meta  Map   `json:"meta,omitempty"`
}

// Collection transforms items into a List.
func Collection[T any](t Transformer[T], items []T) *List {
	return &List{Items: Many(t, items)}
}

// WithMeta attaches metadata such as counts or totals.
func (l *List) WithMeta(meta Map) *List {
	l.Meta = meta
	return l
}
