package upload

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MaxSize is the default upload ceiling, in bytes.
const MaxSize = 5 << 20

// State is a step of the upload pipeline. A successful upload walks
// Received through Committed; a failure after Persisted moves to
// RolledBack.
type State int

const (
	Received State = iota
	SubjectVerified
	FileValidated
	Persisted
	RecordUpdated
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Received:
		return "received"
	case SubjectVerified:
		return "subject_verified"
	case FileValidated:
		return "file_validated"
	case Persisted:
		return "persisted"
	case RecordUpdated:
		return "record_updated"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Metrics counts upload outcomes. Rollback failures are counted apart
// from rollbacks so orphaned files can be alerted on.
type Metrics struct {
	committed        metric.Int64Counter
	rejected         metric.Int64Counter
	rollbacks        metric.Int64Counter
	rollbackFailures metric.Int64Counter
}

// NewMetrics registers the upload counters on meter. A nil meter uses the
// global provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter("github.com/aanand-mishra/alumnos-api/internal/upload")
	}

	var m Metrics
	var err error
	if m.committed, err = meter.Int64Counter("uploads.committed",
		metric.WithDescription("Uploads stored and attached to their subject")); err != nil {
		return nil, err
	}
	if m.rejected, err = meter.Int64Counter("uploads.rejected",
		metric.WithDescription("Uploads refused before anything was written")); err != nil {
		return nil, err
	}
	if m.rollbacks, err = meter.Int64Counter("uploads.rollbacks",
		metric.WithDescription("Stored files removed after the record update failed")); err != nil {
		return nil, err
	}
	if m.rollbackFailures, err = meter.Int64Counter("uploads.rollback_failures",
		metric.WithDescription("Rollbacks that could not remove the stored file")); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Metrics) Committed(ctx context.Context, category string) {
	m.committed.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

// Rejected records an upload that stopped in state at.
func (m *Metrics) Rejected(ctx context.Context, category string, at State) {
	m.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("state", at.String()),
	))
}

func (m *Metrics) RolledBack(ctx context.Context, category string) {
	m.rollbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}

func (m *Metrics) RollbackFailed(ctx context.Context, category string) {
	m.rollbackFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("category", category)))
}
