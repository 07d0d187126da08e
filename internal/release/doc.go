// Package release checks the published releases of the CLI and reports
// whether a newer version than the running binary exists. Results are
// cached in the config directory so repeated checks stay offline.
package release
