// Package domain defines the canonical entities persisted by both storage
// engines, their identity generation, and their field-level validation.
// The entities here are the single vocabulary shared by the relational and
// document implementations; engine-specific concerns never leak into them.
package domain
