// Package platform hides the differences in file permission handling
// between Unix and Windows. Windows has no Unix permission bits, so mode
// changes are skipped there and every mode compares as expected.
package platform
