package physac

import "errors"

var (
	ErrBodyLimit       = errors.New("physac: maximum number of bodies reached")
	ErrManifoldLimit   = errors.New("physac: maximum number of manifolds reached")
	ErrBodyNotFound    = errors.New("physac: body not found")
	ErrNotPolygon      = errors.New("physac: body is not a polygon")
	ErrInvalidTimeStep = errors.New("physac: time step must be positive")
	ErrInvalidConfig   = errors.New("physac: invalid configuration")
	ErrNilBody         = errors.New("physac: nil body")
)
