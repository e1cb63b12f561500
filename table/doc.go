// Package table stores and ranks the results of a hyperparameter grid search.
//
// A Table has one column per hyperparameter, in search range order, followed
// by the score column "log_likelihood". Each row is one hyperparameter
// combination and its summed cross-validation score.
//
// # Selecting the Optimum
//
//	best, err := tbl.Optimum(table.Maximize)
//	if err != nil {
//		return err // errs.ErrNoFeasibleCombination
//	}
//	fmt.Println(best.Params["l"], best.Score)
//
// Ties resolve to the lowest row index.
//
// # Persistence
//
// Encode writes a compact binary form (header, column IDs, column names and
// a compressed column-major payload) and Decode reads it back:
//
//	data, err := tbl.Encode(table.WithCompression(format.CompressionZstd))
//	restored, err := table.Decode(data)
//
// WriteCSV exports the table for plotting tools.
package table
