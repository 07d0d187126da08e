// Package registry holds the master provisioning registry: the deduplicated
// union of every asset and command contributed by the selected workflows.
// Model files are indexed by destination group, repositories live in the
// custom_nodes group, and free-form commands in the commands group. A set of
// seen source URLs and a set of seen commands enforce uniqueness.
package registry
