package mcp

import (
	"net/http"

	"github.com/custodia-labs/feedcorpus/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server reads from.
type Ports struct {
	// Corpus answers every query.
	Corpus driving.CorpusService

	// Settings lists the subscribed feeds. Optional.
	Settings driving.SettingsService

	// Metrics is mounted at /metrics in HTTP mode. Optional.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	return nil
}
