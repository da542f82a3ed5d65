package searchtree

type options struct {
	cascadePrune bool
}

// Option configures a Tree.
type Option func(*options)

// WithCascadePrune makes Remove delete ancestors that are left with neither
// a payload nor children. The root is never pruned.
func WithCascadePrune() Option {
	return func(o *options) {
		o.cascadePrune = true
	}
}
