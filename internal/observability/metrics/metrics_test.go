package metrics

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("role", "祝福パン"),
		attribute.String("member_id", "123"),
		attribute.String("member_name", "田中"),
		attribute.String("op", "create"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key != "role" && attr.Key != "op" {
			t.Fatalf("unexpected label %q retained", attr.Key)
		}
	}
}

func TestNilMetricsRecordersAreNoOps(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	m.RecordAssignment(ctx, "パス1")
	m.RecordUnassignment(ctx, "パス1")
	m.RecordRoleReplacement(ctx)
	m.RecordMemberWrite(ctx, "create")
	m.RecordUnavailabilityWrite(ctx, "add")
}
