package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the process registry with the gatherer used for export.
type Registry struct {
	*prometheus.Registry
}

// NewRegistry returns an empty registry. The CLI runs once per invocation,
// so there is no scrape endpoint; metrics are exported with WriteTextfile.
func NewRegistry() *Registry {
	return &Registry{Registry: prometheus.NewRegistry()}
}

// WriteTextfile writes all gathered metrics to path in the text exposition
// format, for the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
