package domain

// Algorithm selects the route optimization strategy.
type Algorithm string

const (
	AlgorithmNearestNeighbor Algorithm = "nearest"
	AlgorithmTwoOpt          Algorithm = "2opt"
)

// ParseAlgorithm maps the wire value to an Algorithm. Values are matched
// exactly; an empty value selects 2-opt.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmTwoOpt:
		return AlgorithmTwoOpt, nil
	case AlgorithmNearestNeighbor:
		return AlgorithmNearestNeighbor, nil
	default:
		return "", &ParamError{Field: "algorithm", Reason: "must be one of nearest, 2opt"}
	}
}
