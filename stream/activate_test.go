package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/stratum/schema"
)

// fakePopulator records population requests.
type fakePopulator struct {
	populated []string
	err       error
}

func (f *fakePopulator) Populate(ctx context.Context, in *schema.Instance) error {
	f.populated = append(f.populated, in.Ref().Name)
	return f.err
}

func (f *fakePopulator) Progress(ctx context.Context, in *schema.Instance) (int, int, error) {
	return 0, 0, f.err
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func computedEntity(t *testing.T, name string, pop schema.Populator) *schema.Entity {
	t.Helper()
	ent, err := schema.New(name, schema.Computed, schema.WithPopulator(pop))
	if err != nil {
		t.Fatal(err)
	}
	if err := ent.Bind("pipeline", nil); err != nil {
		t.Fatal(err)
	}
	return ent
}

func insertRecord(table, sk string) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventID:   "evt-1",
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{
			NewImage: map[string]events.DynamoDBAttributeValue{
				"entity": events.NewStringAttribute(table),
				"sk":     events.NewStringAttribute(sk),
			},
		},
	}
}

func TestHandleActivation_PopulatesDependents(t *testing.T) {
	pop := &fakePopulator{}
	h := NewHandler(quiet())
	h.After("lab_session", computedEntity(t, "Spike", pop))
	h.After("lab_session", computedEntity(t, "Waveform", pop))

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord("lab_session", "#row#s01"),
	}}
	if err := h.HandleActivation(context.Background(), event); err != nil {
		t.Fatal(err)
	}

	if len(pop.populated) != 2 {
		t.Fatalf("expected 2 populate calls, got %d", len(pop.populated))
	}
	if pop.populated[0] != "__spike" || pop.populated[1] != "__waveform" {
		t.Errorf("unexpected populate order %v", pop.populated)
	}
}

func TestHandleActivation_IgnoresMetaItems(t *testing.T) {
	pop := &fakePopulator{}
	h := NewHandler(quiet())
	h.After("lab_session", computedEntity(t, "Spike", pop))

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord("lab_session", "#meta"),
	}}
	if err := h.HandleActivation(context.Background(), event); err != nil {
		t.Fatal(err)
	}
	if len(pop.populated) != 0 {
		t.Errorf("expected meta item to be ignored, got %v", pop.populated)
	}
}

func TestHandleActivation_IgnoresModify(t *testing.T) {
	pop := &fakePopulator{}
	h := NewHandler(quiet())
	h.After("lab_session", computedEntity(t, "Spike", pop))

	record := insertRecord("lab_session", "#row#s01")
	record.EventName = "MODIFY"
	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{record}}

	if err := h.HandleActivation(context.Background(), event); err != nil {
		t.Fatal(err)
	}
	if len(pop.populated) != 0 {
		t.Errorf("expected modify to be ignored, got %v", pop.populated)
	}
}

func TestHandleActivation_NoDependents(t *testing.T) {
	h := NewHandler(quiet())

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord("lab_session", "#row#s01"),
	}}
	if err := h.HandleActivation(context.Background(), event); err != nil {
		t.Fatal(err)
	}
}

func TestHandleActivation_PopulateFailurePropagates(t *testing.T) {
	boom := errors.New("make failed")
	pop := &fakePopulator{err: boom}
	h := NewHandler(quiet())
	h.After("lab_session", computedEntity(t, "Spike", pop))

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord("lab_session", "#row#s01"),
	}}
	if err := h.HandleActivation(context.Background(), event); !errors.Is(err, boom) {
		t.Errorf("expected populate error to propagate, got %v", err)
	}
}

// --- getStringAttr Tests ---

func TestGetStringAttr_Existing(t *testing.T) {
	image := map[string]events.DynamoDBAttributeValue{
		"entity": events.NewStringAttribute("__spike"),
	}
	if got := getStringAttr(image, "entity"); got != "__spike" {
		t.Errorf("expected '__spike', got %q", got)
	}
}

func TestGetStringAttr_Missing(t *testing.T) {
	if got := getStringAttr(nil, "entity"); got != "" {
		t.Errorf("expected empty string for nil image, got %q", got)
	}
}
