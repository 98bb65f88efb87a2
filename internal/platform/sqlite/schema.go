package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/lexiglow/lexistore/internal/model"
)

// TableDDL renders the CREATE TABLE statement for one entity
// definition: TEXT primary keys holding 26-character identifiers,
// UNIQUE constraints for every declared uniqueness scope, CHECK
// constraints for enum domains, and FOREIGN KEY clauses carrying the
// declared delete policy.
func TableDDL(def model.Def) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quote(def.Entity))

	var lines []string
	for _, f := range def.Fields {
		col := fmt.Sprintf("\t%s %s", quote(f.Name), columnType(f.Kind))
		if !f.Nullable {
			col += " NOT NULL"
		}
		if len(f.Enum) > 0 {
			// NULL IN (...) is not a violation, so one form serves
			// nullable and required enum fields alike.
			col += fmt.Sprintf(" CHECK (%s IN (%s))", quote(f.Name), quoteValues(f.Enum))
		}
		lines = append(lines, col)
	}

	lines = append(lines, fmt.Sprintf("\tPRIMARY KEY (%s)", quoteAll(def.Key)))

	for _, u := range def.Uniques {
		lines = append(lines, fmt.Sprintf(
			"\tCONSTRAINT %s UNIQUE (%s)", quote(u.Name), quoteAll(u.Fields),
		))
	}

	for _, r := range def.Refs {
		lines = append(lines, fmt.Sprintf(
			"\tFOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s",
			quote(r.Field), quote(r.Target), quote("id"), r.OnDelete,
		))
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n)")
	return b.String()
}

// TriggerDDL renders the updatedAt maintenance trigger for one entity,
// or "" for entities without an updatedAt field. The trigger rewrites
// updatedAt whenever any other column changes; the WHEN clause keeps it
// from re-firing on its own write. Store code must never set updatedAt
// on UPDATE; the trigger owns the column on this engine.
func TriggerDDL(def model.Def) string {
	if !def.HasUpdatedAt() {
		return ""
	}

	var match []string
	for _, k := range def.Key {
		match = append(match, fmt.Sprintf("%s = NEW.%s", quote(k), quote(k)))
	}

	return fmt.Sprintf(
		`CREATE TRIGGER IF NOT EXISTS %s
AFTER UPDATE ON %s
FOR EACH ROW
WHEN NEW.%s = OLD.%s
BEGIN
	UPDATE %s SET %s = STRFTIME('%%Y-%%m-%%d %%H:%%M:%%f+00:00', 'now') WHERE %s;
END`,
		quote("trg_"+def.Entity+"_updatedAt"),
		quote(def.Entity),
		quote("updatedAt"), quote("updatedAt"),
		quote(def.Entity), quote("updatedAt"),
		strings.Join(match, " AND "),
	)
}

// Migrate installs the schema for every entity in the model registry.
// Definitions are declared parents-first, so foreign keys always target
// an existing table. Idempotent: every statement is IF NOT EXISTS.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, def := range model.Definitions() {
		if _, err := db.ExecContext(ctx, TableDDL(def)); err != nil {
			return fmt.Errorf("creating table %s: %w", def.Entity, err)
		}
		if trg := TriggerDDL(def); trg != "" {
			if _, err := db.ExecContext(ctx, trg); err != nil {
				return fmt.Errorf("creating trigger for %s: %w", def.Entity, err)
			}
		}
	}
	return nil
}

func columnType(k model.Kind) string {
	switch k {
	case model.KindInt:
		return "INTEGER"
	case model.KindFloat:
		return "REAL"
	case model.KindBool:
		return "INTEGER"
	case model.KindTime:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

func quote(ident string) string {
	return `"` + ident + `"`
}

func quoteAll(idents []string) string {
	quoted := make([]string, len(idents))
	for i, id := range idents {
		quoted[i] = quote(id)
	}
	return strings.Join(quoted, ", ")
}

func quoteValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
