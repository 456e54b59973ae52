package nmf_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/specfactor/nmf"
)

// ExampleFactorize unmixes an exactly rank-2 non-negative matrix. The SVD
// seeding lands on the optimum, so the loop settles immediately.
func ExampleFactorize() {
	X := mat.NewDense(4, 3, []float64{
		1, 2, 0,
		2, 4, 0,
		0, 0, 3,
		0, 0, 6,
	})

	res, err := nmf.Factorize(X, 2, nmf.Config{Init: nmf.InitNNDSVD})
	if err != nil {
		fmt.Println("factorize:", err)
		return
	}

	fmt.Println("converged:", res.Converged)
	fmt.Println("exact:", res.Residual/mat.Norm(X, 2) < 1e-6)

	// Output:
	// converged: true
	// exact: true
}
