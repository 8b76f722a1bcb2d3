package entity

import "strings"

// Kind is the effective read/compare type of a column.
type Kind int

const (
	// KindSelf columns are read and compared as they are.
	KindSelf Kind = iota
	// KindText columns (BIGINT) are read and compared as text to avoid
	// precision loss.
	KindText
	KindTimestamp
	KindTime
	KindDate
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTimestamp:
		return "timestamp"
	case KindTime:
		return "time"
	case KindDate:
		return "date"
	default:
		return "self"
	}
}

// IsTemporal reports whether k is a timestamp, time or date.
func (k Kind) IsTemporal() bool {
	return k == KindTimestamp || k == KindTime || k == KindDate
}

// Column definitions recognised per family, after normalizeDefinition.
var (
	timestampDefinitions = map[string]bool{
		"TIMESTAMP":                   true,
		"TIMESTAMPTZ":                 true,
		"TIMESTAMP WITH TIME ZONE":    true,
		"TIMESTAMP WITHOUT TIME ZONE": true,
		"DATETIME":                    true,
	}
	timeDefinitions = map[string]bool{
		"TIME":                   true,
		"TIMETZ":                 true,
		"TIME WITH TIME ZONE":    true,
		"TIME WITHOUT TIME ZONE": true,
	}
	dateDefinitions = map[string]bool{
		"DATE": true,
	}
	jsonDefinitions = map[string]bool{
		"JSON":  true,
		"JSONB": true,
	}
)

// normalizeDefinition upper-cases a column definition, drops a precision
// suffix like "(6)" and collapses whitespace.
func normalizeDefinition(def string) string {
	def = strings.ToUpper(strings.TrimSpace(def))
	if open := strings.IndexByte(def, '('); open >= 0 {
		if end := strings.IndexByte(def[open:], ')'); end >= 0 {
			def = def[:open] + def[open+end+1:]
		}
	}
	return strings.Join(strings.Fields(def), " ")
}

func hasTemporal(temporals []TemporalProperty, property string, t TemporalType) bool {
	for _, tp := range temporals {
		if tp.PropertyName == property && tp.TemporalType == t {
			return true
		}
	}
	return false
}

// KindOf classifies field. The bool result is false for relation fields,
// which have no column and must be skipped.
//
// First match wins: bigint, timestamp, time, date, self.
func KindOf(field Field, temporals []TemporalProperty) (Kind, bool) {
	if field.FieldType.IsRelation() {
		return KindSelf, false
	}

	def := normalizeDefinition(field.ColumnDefinition)

	if field.FieldType == FieldTypeBigInt || def == "BIGINT" {
		return KindText, true
	}
	if field.FieldType == FieldTypeDateTime ||
		hasTemporal(temporals, field.PropertyName, TemporalTimestamp) ||
		timestampDefinitions[def] {
		return KindTimestamp, true
	}
	if field.FieldType == FieldTypeTime ||
		hasTemporal(temporals, field.PropertyName, TemporalTime) ||
		timeDefinitions[def] {
		return KindTime, true
	}
	if field.FieldType == FieldTypeDate ||
		hasTemporal(temporals, field.PropertyName, TemporalDate) ||
		dateDefinitions[def] {
		return KindDate, true
	}
	return KindSelf, true
}

// IsJSON reports whether field holds a JSON document.
func IsJSON(field Field) bool {
	return field.FieldType == FieldTypeJSON || jsonDefinitions[normalizeDefinition(field.ColumnDefinition)]
}

// Sink receives each column of a table with its classification.
type Sink interface {
	AsTimestamp(table string, field Field)
	AsTime(table string, field Field)
	AsDate(table string, field Field)
	AsText(table string, field Field)
	AsSelf(table string, field Field)
}

// Classify dispatches every non-relation field of table to sink, in order.
func Classify(table string, fields []Field, temporals []TemporalProperty, sink Sink) {
	for _, f := range fields {
		kind, ok := KindOf(f, temporals)
		if !ok {
			continue
		}
		switch kind {
		case KindText:
			sink.AsText(table, f)
		case KindTimestamp:
			sink.AsTimestamp(table, f)
		case KindTime:
			sink.AsTime(table, f)
		case KindDate:
			sink.AsDate(table, f)
		default:
			sink.AsSelf(table, f)
		}
	}
}
