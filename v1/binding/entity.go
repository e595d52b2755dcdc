package binding

import "fmt"

// Entity is the identity contract the From and To filters accept. Any
// domain object that can name its own id and type qualifies.
type Entity interface {
	GetID() string
	GetType() string
}

// endpoint is a resolved From/To reference.
type endpoint struct {
	id  string
	typ string
}

// resolveEndpoint turns the permissive From/To input into an endpoint.
// Accepted shapes, in order:
//   - a bare type-name string plus an explicit id argument,
//   - anything satisfying Entity,
//   - anything exposing ID() / Type() accessors.
//
// Everything else is an invalid argument.
func resolveEndpoint(v any, id ...string) (endpoint, error) {
	switch e := v.(type) {
	case nil:
		return endpoint{}, fmt.Errorf("nil entity reference: %w", ErrInvalidArgument)
	case string:
		if e == "" {
			return endpoint{}, fmt.Errorf("empty entity type: %w", ErrInvalidArgument)
		}
		if len(id) == 0 || id[0] == "" {
			return endpoint{}, fmt.Errorf("entity type %q given without an id: %w", e, ErrInvalidArgument)
		}
		return endpoint{id: id[0], typ: e}, nil
	case Entity:
		return endpoint{id: e.GetID(), typ: e.GetType()}, nil
	}

	if e, ok := v.(interface {
		ID() string
		Type() string
	}); ok {
		return endpoint{id: e.ID(), typ: e.Type()}, nil
	}

	return endpoint{}, fmt.Errorf("%T exposes neither GetID/GetType nor ID/Type: %w", v, ErrInvalidArgument)
}
