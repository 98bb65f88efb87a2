// Package sqlite implements the repository contract on the relational
// engine: an embedded SQLite database file. Referential integrity is
// enforced by native FOREIGN KEY constraints with declared delete
// policies, uniqueness by UNIQUE constraints, enum domains by CHECK
// constraints, and updatedAt maintenance by per-table triggers, all
// generated from the entity model in internal/model. Because the
// trigger owns updatedAt, the stores in this package never write that
// column on UPDATE.
package sqlite
