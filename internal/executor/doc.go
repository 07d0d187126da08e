// Package executor walks a populated registry and performs its side effects
// in a fixed order: custom-node repositories, then setup commands, then model
// downloads group by group. A failing entry is reported and skipped; the run
// always continues to the next entry and never rolls back, so a provisioning
// run can simply be repeated until it is clean.
package executor
