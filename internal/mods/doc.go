// Package mods holds the RNA modification catalogue: the closed RnaBase
// alphabet, Modification records with the base constraints each modification
// imposes, and the immutable Database indexing modifications by Sprinzl
// position and by name.
//
// A Database is built once at startup and validated during construction;
// a malformed catalogue is a fatal configuration error, never served. Built
// databases are read-only and safe to share across concurrent analyses.
package mods
