// Package asset defines the two kinds of provisioning entries a workflow can
// declare: model files fetched with the transfer tool and custom-node
// repositories cloned with git. Both implement Entry, whose Materialize turns
// the declaration into files on disk through a runner.Runner.
package asset
