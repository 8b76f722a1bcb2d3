// Package filterlang parses textual filter expressions into where.Where.
//
//	city = 'New York' and (age < 18 or age > 65)
//	created between "2024-01-01" and "2024-02-01"
//	status in ('open', 'held') or owner.name = null
//
// Keywords are case-insensitive. Property names may be dotted. Comparisons
// map onto the where algebra: = is PropertyEquals, < is PropertyBefore,
// > is PropertyAfter, between is PropertyBetween and in is
// PropertyListEquals. and binds tighter than or.
package filterlang

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/wherec/internal/where"
)

// Parse parses src into a Where.
func Parse(src string) (where.Where, error) {
	if strings.TrimSpace(src) == "" {
		return where.Where{}, nil
	}

	expr, err := filterParser.ParseString("", src)
	if err != nil {
		return where.Where{}, fmt.Errorf("parse filter: %w", err)
	}
	return expr.build()
}

func (e *Expression) build() (where.Where, error) {
	var acc where.Where
	for i, term := range e.Terms {
		w, err := term.build()
		if err != nil {
			return where.Where{}, err
		}
		if i == 0 {
			acc = w
			continue
		}
		if acc, err = where.Or(acc, w); err != nil {
			return where.Where{}, err
		}
	}
	return acc, nil
}

func (t *Term) build() (where.Where, error) {
	var acc where.Where
	for _, f := range t.Factors {
		w, err := f.build()
		if err != nil {
			return where.Where{}, err
		}
		acc = where.And(acc, w)
	}
	return acc, nil
}

func (f *Factor) build() (where.Where, error) {
	if f.Group != nil {
		return f.Group.build()
	}
	return f.Comparison.build()
}

func (c *Comparison) build() (where.Where, error) {
	switch {
	case c.Between != nil:
		start, err := c.Between.Start.literal()
		if err != nil {
			return where.Where{}, err
		}
		end, err := c.Between.End.literal()
		if err != nil {
			return where.Where{}, err
		}
		return where.PropertyBetween(c.Property, start, end), nil

	case len(c.In) > 0:
		values := make([]any, len(c.In))
		for i, v := range c.In {
			lit, err := v.literal()
			if err != nil {
				return where.Where{}, err
			}
			values[i] = lit
		}
		return where.PropertyListEquals(c.Property, values)
	}

	value, err := c.Value.literal()
	if err != nil {
		return where.Where{}, err
	}
	switch c.Operator {
	case "=":
		return where.PropertyEquals(c.Property, value), nil
	case "<":
		return where.PropertyBefore(c.Property, value), nil
	case ">":
		return where.PropertyAfter(c.Property, value), nil
	default:
		return where.Where{}, fmt.Errorf("parse filter: unknown operator %q", c.Operator)
	}
}

// literal converts v to its Go value: string, int64, float64, bool or nil.
func (v *Value) literal() (any, error) {
	switch {
	case v.String != nil:
		s, err := unquote(*v.String)
		if err != nil {
			return nil, err
		}
		return norm.NFC.String(s), nil
	case v.Number != nil:
		return number(*v.Number)
	case v.Bool != nil:
		return strings.EqualFold(*v.Bool, "true"), nil
	default:
		return nil, nil
	}
}

func unquote(s string) (string, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("parse filter: malformed string %s", s)
	}
	if s[0] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), nil
	}
	u, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("parse filter: string %s: %w", s, err)
	}
	return u, nil
}

func number(s string) (any, error) {
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("parse filter: number %s: %w", s, err)
		}
		return f, nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse filter: number %s: %w", s, err)
	}
	return i, nil
}
