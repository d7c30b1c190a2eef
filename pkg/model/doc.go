// Package model defines the ordered, editor-facing representation of a task
// schema and the pure conversions between it and the object-shaped
// schema.Schema. The ordered list is the editable form; the keyed mapping is
// only assembled at the export boundary so field order never depends on map
// iteration. All conversions are side-effect-free over immutable inputs and
// safe to call concurrently.
package model
