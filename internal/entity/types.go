package entity

import (
	"fmt"
	"strings"
)

// FieldType is the declared type of an entity property.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeNumber   FieldType = "number"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeBigInt   FieldType = "bigint"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeJSON     FieldType = "json"
	FieldTypeDateTime FieldType = "date-time"
	FieldTypeDate     FieldType = "date"
	FieldTypeTime     FieldType = "time"

	// Relation kinds do not map to a column of the table.
	FieldTypeJoinedEntity FieldType = "joined-entity"
	FieldTypeOneToMany    FieldType = "one-to-many"
	FieldTypeManyToOne    FieldType = "many-to-one"
)

var knownFieldTypes = map[FieldType]bool{
	FieldTypeString: true, FieldTypeNumber: true, FieldTypeInteger: true,
	FieldTypeBigInt: true, FieldTypeBoolean: true, FieldTypeJSON: true,
	FieldTypeDateTime: true, FieldTypeDate: true, FieldTypeTime: true,
	FieldTypeJoinedEntity: true, FieldTypeOneToMany: true, FieldTypeManyToOne: true,
}

// IsRelation reports whether t describes a relation rather than a column.
func (t FieldType) IsRelation() bool {
	switch t {
	case FieldTypeJoinedEntity, FieldTypeOneToMany, FieldTypeManyToOne:
		return true
	default:
		return false
	}
}

// TemporalType is the temporal precision declared for a property.
type TemporalType string

const (
	TemporalDate      TemporalType = "DATE"
	TemporalTime      TemporalType = "TIME"
	TemporalTimestamp TemporalType = "TIMESTAMP"
)

// Field describes one entity property and its column.
type Field struct {
	PropertyName     string    `json:"property" yaml:"property"`
	ColumnName       string    `json:"column" yaml:"column"`
	FieldType        FieldType `json:"type" yaml:"type"`
	ColumnDefinition string    `json:"definition,omitempty" yaml:"definition,omitempty"`
	Nullable         bool      `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Insertable       bool      `json:"insertable,omitempty" yaml:"insertable,omitempty"`
	Updatable        bool      `json:"updatable,omitempty" yaml:"updatable,omitempty"`
}

// TemporalProperty declares the temporal type of a property explicitly.
type TemporalProperty struct {
	PropertyName string       `json:"property" yaml:"property"`
	TemporalType TemporalType `json:"type" yaml:"type"`
}

// FindByProperty returns the field for propertyName.
func FindByProperty(fields []Field, propertyName string) (Field, bool) {
	for _, f := range fields {
		if f.PropertyName == propertyName {
			return f, true
		}
	}
	return Field{}, false
}

// Definition is the metadata of one entity table.
type Definition struct {
	Table    string             `json:"table" yaml:"table"`
	Fields   []Field            `json:"fields" yaml:"fields"`
	Temporal []TemporalProperty `json:"temporal,omitempty" yaml:"temporal,omitempty"`
}

// reservedSequence is the unnumbered Postgres placeholder. Inside a quoted
// identifier it would still be numbered when the statement is finalized.
const reservedSequence = "$?"

// Validate checks that the definition can be compiled against.
func (d *Definition) Validate() error {
	if strings.TrimSpace(d.Table) == "" {
		return fmt.Errorf("entity table name is required")
	}
	if strings.Contains(d.Table, reservedSequence) {
		return fmt.Errorf("entity %s: table name must not contain %q", d.Table, reservedSequence)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("entity %s: at least one field is required", d.Table)
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.PropertyName == "" {
			return fmt.Errorf("entity %s: fields[%d]: property name is required", d.Table, i)
		}
		if seen[f.PropertyName] {
			return fmt.Errorf("entity %s: duplicate property %q", d.Table, f.PropertyName)
		}
		seen[f.PropertyName] = true

		if f.FieldType != "" && !knownFieldTypes[f.FieldType] {
			return fmt.Errorf("entity %s: property %q: unknown field type %q", d.Table, f.PropertyName, f.FieldType)
		}
		if f.ColumnName == "" && !f.FieldType.IsRelation() {
			return fmt.Errorf("entity %s: property %q: column name is required", d.Table, f.PropertyName)
		}
		if strings.Contains(f.ColumnName, reservedSequence) {
			return fmt.Errorf("entity %s: property %q: column name must not contain %q", d.Table, f.PropertyName, reservedSequence)
		}
	}

	for i, tp := range d.Temporal {
		switch tp.TemporalType {
		case TemporalDate, TemporalTime, TemporalTimestamp:
		default:
			return fmt.Errorf("entity %s: temporal[%d]: unknown temporal type %q", d.Table, i, tp.TemporalType)
		}
		if !seen[tp.PropertyName] {
			return fmt.Errorf("entity %s: temporal[%d]: unknown property %q", d.Table, i, tp.PropertyName)
		}
	}

	return nil
}
