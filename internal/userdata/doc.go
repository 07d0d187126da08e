// Package userdata manages the ~/.provis/ directory: path resolution, the
// optional tokens.env credentials file, secret redaction for display, and the
// health check run by the doctor command.
package userdata
