// Package mongodb is the document-engine adapter. It renders the
// entity model into $jsonSchema collection validators and unique
// indexes, and enforces the cross-entity delete policies in
// application code: the document engine has no foreign keys, so
// RESTRICT, CASCADE, and SET NULL run as ordered multi-step sequences
// that settle dependents before touching the target.
package mongodb
