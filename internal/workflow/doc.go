// Package workflow defines named bundles of provisioning intents. A Workflow
// is built incrementally from models, custom-node repositories and setup
// commands, then merged into a registry.Registry, where duplicates across
// workflows are dropped.
package workflow
