// Package sprinzl maps covariance-model alignment coordinates to the
// canonical Sprinzl tRNA numbering (positions 1-76 plus lettered insertion
// positions such as 17a and 20b).
//
// The package has two halves: the Position value type with its total order,
// and the mapper that walks a hit's alignment trace against a static
// consensus reference to produce a per-sequence column-to-position mapping.
// Mappings record deleted consensus positions and uncovered positions
// explicitly so downstream scoring uses consistent denominators.
package sprinzl
