// Package schema classifies pipeline entities into semantic tiers,
// derives their canonical storage names, and lets a declared entity
// stand in for a default instance of itself.
//
// Stratum models a data-pipeline metadata layer: every table class is
// declared once with a fixed tier, and everything else - the stored
// name, the master/part linkage, the instance capabilities - derives
// from that declaration.
//
// # Tiers
//
// An entity belongs to one of five tiers, encoded as a storage-name
// prefix:
//
//	Manual    ""    entered by hand
//	Lookup    "#"   reference values
//	Imported  "_"   populated from external sources
//	Computed  "__"  populated from other tables
//	Part      master name + "__"
//
// [Recognize] decodes a stored name back into its tier and base name.
// Part names are recognized before the root tiers, and "__" before
// "_", so a name is never misclassified.
//
// # Declaration
//
// Entities are declared with [New] (root tiers) or [NewPart], then
// bound to a schema exactly once by the registration step:
//
//	session, _ := schema.New("LabSession", schema.Manual)
//	session.Members().Declare("session_id")
//	session.Members().Declare("operator")
//	session.Members().Freeze()
//	err := session.Bind("pipeline", provider)
//
// Member order is captured as declared and frozen afterward; schema
// rendering downstream depends on it.
//
// # Lazy dispatch
//
// Every operation in [Capabilities] can be called on the entity
// itself. The entity materializes a default [Instance] and forwards,
// so these are equivalent:
//
//	rows, err := session.Fetch(ctx, nil)
//
//	in, err := session.Default()
//	rows, err = in.Fetch(ctx, nil)
//
// Materialization fails with [ErrUnboundSchema] before registration,
// and that failure surfaces from whichever capability triggered it.
//
// # Parts
//
// A part is owned by exactly one root-tier master. Its storage name is
// the master's followed by "__" and its own base name, and its rows
// live and die with the master: master deletes and drops cascade to
// parts, while direct part deletes fail with [ErrPartMutation] unless
// routed through the ForceDelete and ForceDrop overrides.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotRecognized] - name matches no tier pattern
//   - [ErrAmbiguousName] - name matches several patterns (registry fault)
//   - [ErrUnboundSchema] - registration has not assigned a schema yet
//   - [ErrPartMutation] - direct part delete or drop without force
//   - [ErrInvalidMasterTier] - part declared under a non-root master
//   - [ErrBadIdentifier] - type name outside CamelCase ASCII
package schema
