// Package scaffold generates starter catalog files from embedded templates. It
// powers the "catalog new" command and validates every generated file against
// the catalog schema.
package scaffold
