package tinyscope

import "context"

type scopeCtxKey struct{}

// Returns copy of `ctx` carrying `s`.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, s)
}

// Returns Scope stored by WithScope.
func FromContext(ctx context.Context) (*Scope, bool) {
	if ctx == nil {
		return nil, false
	}

	s, ok := ctx.Value(scopeCtxKey{}).(*Scope)

	return s, ok && s != nil
}
