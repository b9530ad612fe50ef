// Package infernal is the boundary to the external covariance-model search.
// It defines the Hit contract the core consumes, parses cmsearch tabular
// output, derives alignment traces from aligned rows, and shells out to the
// cmsearch binary.
//
// The search engine itself (alignment, scoring, E-values) stays external;
// nothing in this package assumes more than the documented output formats.
package infernal
