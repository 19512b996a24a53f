// Package stream provides DynamoDB Streams handlers that activate
// population when upstream rows arrive.
package stream

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/stratum/schema"
)

// Handler reacts to stream events from a stratum DynamoDB table by
// populating the entities registered downstream of the written table.
type Handler struct {
	downstream map[string][]*schema.Entity
	logger     *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		downstream: make(map[string][]*schema.Entity),
		logger:     logger,
	}
}

// After registers ent for population whenever a row lands in the table
// named upstream. The entity must carry a populate collaborator.
func (h *Handler) After(upstream string, ent *schema.Entity) {
	h.downstream[upstream] = append(h.downstream[upstream], ent)
}

// HandleActivation processes DynamoDB stream events and runs populate
// for the affected downstream entities. Designed to be used as an AWS
// Lambda handler.
func (h *Handler) HandleActivation(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord handles a single stream record. Only row inserts
// activate anything; meta items and modifications are ignored.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != "INSERT" {
		return nil
	}

	// Layout written by the dynamo provider: "entity" holds the
	// storage name, row sort keys start with "#row#".
	table := getStringAttr(record.Change.NewImage, "entity")
	sk := getStringAttr(record.Change.NewImage, "sk")
	if table == "" || !strings.HasPrefix(sk, "#row#") {
		return nil
	}

	dependents := h.downstream[table]
	if len(dependents) == 0 {
		return nil
	}

	h.logger.Info("activating downstream population",
		"upstream", table,
		"dependents", len(dependents),
	)

	for _, ent := range dependents {
		if err := ent.Populate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok {
		return v.String()
	}
	return ""
}
