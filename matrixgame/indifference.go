package matrixgame

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Target selects whose strategies the indifference system is built over.
// TargetRow solves for the column player's mix (making the row player
// indifferent across its rows); TargetCol solves for the row player's mix.
type Target int

const (
	TargetRow Target = iota
	TargetCol
)

// normalizationTol is how far the LP solution's probability mass may stray
// from 1 before the solution is rejected.
const normalizationTol = 0.1

// SolveIndifference finds a mixed strategy that makes the opposing player
// indifferent among all of their pure strategies, by solving the feasibility
// LP with the (k-1) indifference equations plus normalization, 0 <= p <= 1.
//
// It returns a nil vector (without error) when the LP is infeasible or the
// solution does not normalize: callers treat that as a recoverable gap and
// fall through to their next algorithm. An error is returned only for the
// contract violation of passing fewer than two strategies.
func SolveIndifference(payoffs [][]float64, target Target) ([]float64, error) {
	m := len(payoffs)
	if m == 0 {
		return nil, errors.New("indifference solver needs a non-empty payoff matrix")
	}
	n := len(payoffs[0])

	var eqs *mat.Dense // equality constraints, one row per equation
	var rhs []float64
	var numVars int

	switch target {
	case TargetRow:
		// Solve for the column player's mix p in R^n with
		// (A[i] - A[0]) . p = 0 for i = 1..m-1 and sum(p) = 1.
		if m < 2 {
			return nil, errors.New("need at least two strategies for the row player")
		}
		numVars = n
		eqs = mat.NewDense(m, n, nil)
		rhs = make([]float64, m)
		for i := 1; i < m; i++ {
			for j := 0; j < n; j++ {
				eqs.Set(i-1, j, payoffs[i][j]-payoffs[0][j])
			}
		}
		for j := 0; j < n; j++ {
			eqs.Set(m-1, j, 1)
		}
		rhs[m-1] = 1
	case TargetCol:
		// Solve for the row player's mix p in R^m with
		// (A[:,j] - A[:,0]) . p = 0 for j = 1..n-1 and sum(p) = 1.
		if n < 2 {
			return nil, errors.New("need at least two strategies for the column player")
		}
		numVars = m
		eqs = mat.NewDense(n, m, nil)
		rhs = make([]float64, n)
		for j := 1; j < n; j++ {
			for i := 0; i < m; i++ {
				eqs.Set(j-1, i, payoffs[i][j]-payoffs[i][0])
			}
		}
		for i := 0; i < m; i++ {
			eqs.Set(n-1, i, 1)
		}
		rhs[n-1] = 1
	default:
		return nil, errors.Errorf("invalid indifference target %d", target)
	}

	// Feasibility only: zero objective. The sum constraint together with
	// p >= 0 already bounds every component by 1.
	c := make([]float64, numVars)
	_, solution, err := lp.Simplex(c, eqs, rhs, 0, nil)
	if err != nil {
		glog.V(1).Infof("indifference LP infeasible: %v", err)
		return nil, nil
	}

	var total float64
	for _, p := range solution {
		total += p
	}
	if math.Abs(total-1) > normalizationTol {
		glog.V(1).Infof("indifference LP solution does not normalize: sum=%.4f", total)
		return nil, nil
	}
	return solution, nil
}
