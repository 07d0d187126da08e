// Package catalog holds the named workflows a run can select from: the
// built-in set shipped with the binary, optionally overridden or extended by
// catalog files.
package catalog
