package querysql

import (
	"strings"
	"time"

	"github.com/roach88/wherec/internal/chain"
)

// TimestampLayout is the ISO-8601 UTC text form temporal values are bound as.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// fragments is the state shared by both dialects: rendered predicate text and
// the value factories for its placeholders, in order.
type fragments struct {
	op        string
	parts     []string
	factories []chain.ValueFactory
}

func (f *fragments) push(part string, values ...chain.ValueFactory) {
	f.parts = append(f.parts, part)
	f.factories = append(f.factories, values...)
}

// BuildQueryString implements chain.Query.
func (f *fragments) BuildQueryString() string {
	if len(f.parts) == 0 {
		return ""
	}
	return "(" + strings.Join(f.parts, f.op) + ")"
}

// BuildQueryValues implements chain.Query.
func (f *fragments) BuildQueryValues() []any {
	values := make([]any, len(f.factories))
	for i, factory := range f.factories {
		values[i] = factory()
	}
	return values
}

// QueryValueFactories implements chain.Query.
func (f *fragments) QueryValueFactories() []chain.ValueFactory {
	out := make([]chain.ValueFactory, len(f.factories))
	copy(out, f.factories)
	return out
}

// MergeFrom implements chain.Builder.
func (f *fragments) MergeFrom(child chain.Query) {
	text := child.BuildQueryString()
	if text == "" {
		return
	}
	f.push(text, child.QueryValueFactories()...)
}

const (
	andOp = " AND "
	orOp  = " OR "
)

// constant returns a factory for a value known at build time.
func constant(v any) chain.ValueFactory {
	return func() any { return v }
}

// asTime wraps a factory so time values render as ISO-8601 UTC text.
func asTime(f chain.ValueFactory) chain.ValueFactory {
	return func() any { return TemporalValue(f()) }
}

func asTimeAll(fs []chain.ValueFactory) []chain.ValueFactory {
	out := make([]chain.ValueFactory, len(fs))
	for i, f := range fs {
		out[i] = asTime(f)
	}
	return out
}

// temporalLayouts are the text forms TemporalValue normalizes.
var temporalLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// TemporalValue converts time.Time (or *time.Time) and date or timestamp
// text to TimestampLayout text in UTC. Text without a zone is read as UTC.
// Other values, time-of-day text included, are returned unchanged.
func TemporalValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(TimestampLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(TimestampLayout)
	case string:
		for _, layout := range temporalLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC().Format(TimestampLayout)
			}
		}
		return v
	default:
		return v
	}
}
