package snapshot

import (
	"context"
	"time"

	"github.com/kubepulse/kubepulse/internal/models"
	"github.com/kubepulse/kubepulse/internal/observability"
)

// InstrumentedProvider decorates a Provider with fetch metrics.
type InstrumentedProvider struct {
	inner   Provider
	metrics *observability.Metrics
}

// Instrument wraps the given provider. A nil metrics handle returns the
// provider unchanged.
func Instrument(inner Provider, metrics *observability.Metrics) Provider {
	if metrics == nil {
		return inner
	}
	return &InstrumentedProvider{inner: inner, metrics: metrics}
}

// FetchSnapshot implements Provider.
func (p *InstrumentedProvider) FetchSnapshot(ctx context.Context, namespace string) (*models.ClusterSnapshot, error) {
	start := time.Now()
	snap, err := p.inner.FetchSnapshot(ctx, namespace)
	p.metrics.SnapshotFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.SnapshotFetchTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	p.metrics.SnapshotFetchTotal.WithLabelValues("ok").Inc()
	return snap, nil
}
