package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/common/expfmt"
)

// ErrMetricsDisabled is returned by WriteMetrics when metrics are off.
var ErrMetricsDisabled = errors.New("metrics are disabled")

// WriteMetrics prints the collected metrics in the Prometheus text
// exposition format.
func (a *App) WriteMetrics() error {
	if a.registry == nil {
		return ErrMetricsDisabled
	}
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.outW, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
