package gp

import "gonum.org/v1/gonum/mat"

// symBlock copies the rows and columns idx of src into a new symmetric matrix
// and adds diag to its diagonal.
func symBlock(src mat.Symmetric, idx []int, diag float64) *mat.SymDense {
	n := len(idx)
	out := mat.NewSymDense(n, nil)
	for i, r := range idx {
		for j := i; j < n; j++ {
			out.SetSym(i, j, src.At(r, idx[j]))
		}
		out.SetSym(i, i, out.At(i, i)+diag)
	}

	return out
}

// block copies the rows x cols sub-matrix of src.
func block(src mat.Matrix, rows, cols []int) *mat.Dense {
	out := mat.NewDense(len(rows), len(cols), nil)
	for i, r := range rows {
		for j, c := range cols {
			out.Set(i, j, src.At(r, c))
		}
	}

	return out
}

// symmetrize returns (a + aᵀ)/2 of the square matrix a.
func symmetrize(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	out := mat.NewSymDense(n, nil)
	for i := range n {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}

	return out
}
