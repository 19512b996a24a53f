// Package dynamo is a DynamoDB-backed capability provider for stratum
// entities.
//
// Each schema binding maps to one DynamoDB table; every stored entity
// table is a partition within it, keyed by its storage name. Because a
// storage name may carry the "#" lookup prefix, which DynamoDB rejects
// in physical table names, the single-table layout also avoids a
// table-per-entity explosion:
//
//	entity (partition key)   sk (sort key)
//	"#brain_region"          "#meta"                definition, primary key
//	"#brain_region"          "#row#cortex"          one row
//	"_recording"             "#row#s01#3"           one row
//
// Register writes the meta item for a table; Describe and PrimaryKey
// read it back. Fetch, Count, Insert, Delete, and Drop operate on the
// row items. Inserts are transactional with an idempotency token and
// refuse duplicate primary keys.
//
// The provider implements [schema.Provider] and is handed to
// [schema.Entity.Bind] by the registration step:
//
//	client, err := dynamo.NewClient(ctx, cfg)
//	p := dynamo.New(client, cfg)
//	err = recording.Bind("pipeline", p)
package dynamo
