package linear

// Option configures an ElasticNet model.
type Option func(*ElasticNet)

// WithMaxIter sets the coordinate-descent iteration cap.
func WithMaxIter(n int) Option {
	return func(en *ElasticNet) {
		en.maxIter = n
	}
}

// WithTol sets the coordinate-descent convergence tolerance on the
// maximum coefficient change per sweep.
func WithTol(tol float64) Option {
	return func(en *ElasticNet) {
		en.tol = tol
	}
}
