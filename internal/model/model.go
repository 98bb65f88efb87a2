// Package model is the declarative, engine-neutral description of every
// persisted entity: field types and nullability, enumerated domains,
// uniqueness scopes, and cross-entity references with their delete
// policies. It is the single authority from which the relational DDL
// (internal/platform/sqlite) and the document validators and integrity
// checks (internal/platform/mongodb) are both derived; neither adapter
// ever infers a rule from the other engine's schema.
package model

// Policy is the delete-propagation policy of a reference when its
// target entity is deleted.
type Policy int

const (
	// Restrict forbids deleting the target while dependents exist.
	Restrict Policy = iota
	// Cascade deletes dependents along with the target.
	Cascade
	// SetNull nulls the referencing field on dependents.
	SetNull
)

func (p Policy) String() string {
	switch p {
	case Restrict:
		return "RESTRICT"
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	default:
		return "UNKNOWN"
	}
}

// Kind is the scalar type of a field, abstracted over both engines.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

// Field describes one persisted field of an entity. Name is the wire
// name shared by both engines (column name and document key).
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
	Enum     []string
}

// Unique declares a uniqueness scope over one or more fields. Name is
// used as the constraint/index name on both engines.
type Unique struct {
	Name   string
	Fields []string
}

// Ref declares that Field references the primary key of the Target
// entity, with the given delete policy.
type Ref struct {
	Field    string
	Target   string
	OnDelete Policy
}

// Def is the full declaration of one entity. Entity doubles as the
// relational table name and the document collection name. Key lists the
// primary-key fields; most entities are keyed by a single generated id,
// the junction entities by a composite of their two references.
type Def struct {
	Entity  string
	Fields  []Field
	Key     []string
	Uniques []Unique
	Refs    []Ref
}

// Field returns the declaration of the named field.
func (d Def) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasUpdatedAt reports whether the entity carries an updatedAt
// timestamp. These are exactly the entities the relational adapter
// installs an update trigger for, and the ones the document stores must
// stamp explicitly on every update.
func (d Def) HasUpdatedAt() bool {
	_, ok := d.Field("updatedAt")
	return ok
}

// Required lists the non-nullable fields, the basis for both engines'
// required-field enforcement.
func (d Def) Required() []string {
	var req []string
	for _, f := range d.Fields {
		if !f.Nullable {
			req = append(req, f.Name)
		}
	}
	return req
}

// Dependent pairs an entity definition with the reference through which
// it depends on some target entity.
type Dependent struct {
	Def Def
	Ref Ref
}

// Lookup returns the definition of the named entity.
func Lookup(entity string) (Def, bool) {
	for _, d := range Definitions() {
		if d.Entity == entity {
			return d, true
		}
	}
	return Def{}, false
}

// DependentsOf returns every (entity, reference) pair that points at
// the named entity, in declaration order. Callers deleting target rows
// must settle these dependents first: the document engine has no
// foreign keys, so a dangling required reference must never become
// visible, even momentarily.
func DependentsOf(entity string) []Dependent {
	var deps []Dependent
	for _, d := range Definitions() {
		for _, r := range d.Refs {
			if r.Target == entity {
				deps = append(deps, Dependent{Def: d, Ref: r})
			}
		}
	}
	return deps
}
