// Package manifest handles parsing and validation of catalog files. A catalog
// file declares provisioning workflows (model downloads, custom-node
// repositories and setup commands) in YAML, TOML or HCL, and is validated
// against the embedded JSON schema in schema/catalog.schema.json before it is
// turned into workflows.
package manifest
