// Package mcp provides an MCP (Model Context Protocol) server adapter for
// feedcorpus. It lets AI assistants query term statistics over the local
// article corpus. Every tool is read-only.
package mcp

import "errors"

// ErrMissingCorpusService is returned when the corpus service is not provided.
var ErrMissingCorpusService = errors.New("mcp: corpus service is required")
