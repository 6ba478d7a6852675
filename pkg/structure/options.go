package structure

// DefaultMaxDepth bounds the nesting of ensembles when MaxDepth is not set.
const DefaultMaxDepth = 64

type Option func(w *walker)

// Prefix sets the string prepended to every top-level step name.
func Prefix(prefix string) Option {
	return func(w *walker) {
		w.prefix = prefix
	}
}

// MaxDepth bounds the nesting of ensembles. A value lower or equal to 0 disables the bound.
func MaxDepth(depth int) Option {
	return func(w *walker) {
		w.maxDepth = depth
	}
}

// Lineage makes member prefixes accumulate through nesting ("outer - inner - step")
// instead of showing the closest member only.
func Lineage() Option {
	return func(w *walker) {
		w.lineage = true
	}
}
