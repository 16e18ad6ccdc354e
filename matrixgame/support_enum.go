// Package matrixgame implements solvers for two-player bimatrix games given
// as dense payoff matrices: Nash equilibrium support enumeration, an
// LP-based indifference (equalizing) solver, fictitious play, and a CFR
// approximation of the one-shot game.
package matrixgame

import (
	"gonum.org/v1/gonum/mat"
)

// supportTol is the numerical tolerance for support membership and
// best-response checks during enumeration.
const supportTol = 1e-9

// Equilibrium is one Nash equilibrium of a bimatrix game, expressed as full
// mixed-strategy vectors for the row and column players.
type Equilibrium struct {
	Row []float64
	Col []float64
}

// SupportEnumeration finds all Nash equilibria (pure and mixed) of the
// bimatrix game defined by the two m x n payoff matrices. rowPayoffs[i][j]
// is the row player's payoff when row i meets column j, colPayoffs[i][j]
// the column player's. Degenerate games may yield duplicate or incomplete
// enumerations, as usual for this method.
func SupportEnumeration(rowPayoffs, colPayoffs [][]float64) []Equilibrium {
	m := len(rowPayoffs)
	if m == 0 {
		return nil
	}
	n := len(rowPayoffs[0])
	if n == 0 {
		return nil
	}

	maxSupport := m
	if n < maxSupport {
		maxSupport = n
	}

	var equilibria []Equilibrium
	for k := 1; k <= maxSupport; k++ {
		for _, rows := range combinations(m, k) {
			for _, cols := range combinations(n, k) {
				if eq, ok := trySupport(rowPayoffs, colPayoffs, rows, cols); ok {
					equilibria = append(equilibria, eq)
				}
			}
		}
	}
	return equilibria
}

// trySupport solves for an equilibrium with the row player mixing over rows
// and the column player mixing over cols, and verifies that neither player
// can profitably deviate outside their support.
func trySupport(rowPayoffs, colPayoffs [][]float64, rows, cols []int) (Equilibrium, bool) {
	m := len(rowPayoffs)
	n := len(rowPayoffs[0])

	// The column player's mix q makes the row player indifferent across
	// its support: for each i in rows, sum_j A[i][j]*q[j] = v, sum(q) = 1.
	q, v, ok := solveIndifferenceSystem(rowPayoffs, rows, cols, false)
	if !ok {
		return Equilibrium{}, false
	}
	// The row player's mix p makes the column player indifferent:
	// for each j in cols, sum_i B[i][j]*p[i] = w, sum(p) = 1.
	p, w, ok := solveIndifferenceSystem(colPayoffs, cols, rows, true)
	if !ok {
		return Equilibrium{}, false
	}

	// Rows outside the support must not beat the equilibrium value.
	inRows := indexSet(rows)
	for i := 0; i < m; i++ {
		if inRows[i] {
			continue
		}
		var u float64
		for jj, j := range cols {
			u += rowPayoffs[i][j] * q[jj]
		}
		if u > v+supportTol {
			return Equilibrium{}, false
		}
	}
	inCols := indexSet(cols)
	for j := 0; j < n; j++ {
		if inCols[j] {
			continue
		}
		var u float64
		for ii, i := range rows {
			u += colPayoffs[i][j] * p[ii]
		}
		if u > w+supportTol {
			return Equilibrium{}, false
		}
	}

	eq := Equilibrium{
		Row: make([]float64, m),
		Col: make([]float64, n),
	}
	for ii, i := range rows {
		eq.Row[i] = p[ii]
	}
	for jj, j := range cols {
		eq.Col[j] = q[jj]
	}
	return eq, true
}

// solveIndifferenceSystem solves the (k+1)x(k+1) linear system that fixes the
// mixing player's weights over mixIdx so that the judged player is
// indifferent across judgeIdx of the given payoff matrix. When transposed is
// true the matrix is indexed [mix][judge] instead of [judge][mix]. Returns
// the weights, the common payoff value, and whether a valid (non-negative,
// normalized) solution exists.
func solveIndifferenceSystem(payoffs [][]float64, judgeIdx, mixIdx []int, transposed bool) ([]float64, float64, bool) {
	k := len(mixIdx)
	a := mat.NewDense(k+1, k+1, nil)
	b := mat.NewVecDense(k+1, nil)

	for row, i := range judgeIdx {
		for col, j := range mixIdx {
			if transposed {
				a.Set(row, col, payoffs[j][i])
			} else {
				a.Set(row, col, payoffs[i][j])
			}
		}
		a.Set(row, k, -1) // minus the game value
		b.SetVec(row, 0)
	}
	for col := 0; col < k; col++ {
		a.Set(k, col, 1)
	}
	b.SetVec(k, 1)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, 0, false
	}

	weights := make([]float64, k)
	for i := 0; i < k; i++ {
		w := x.AtVec(i)
		if w < -supportTol {
			return nil, 0, false
		}
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}
	return weights, x.AtVec(k), true
}

func indexSet(idx []int) map[int]bool {
	set := make(map[int]bool, len(idx))
	for _, i := range idx {
		set[i] = true
	}
	return set
}

// combinations enumerates all k-element subsets of [0, n).
func combinations(n, k int) [][]int {
	var result [][]int
	current := make([]int, 0, k)
	var recurse func(start int)
	recurse = func(start int) {
		if len(current) == k {
			result = append(result, append([]int(nil), current...))
			return
		}
		for i := start; i <= n-(k-len(current)); i++ {
			current = append(current, i)
			recurse(i + 1)
			current = current[:len(current)-1]
		}
	}
	recurse(0)
	return result
}
