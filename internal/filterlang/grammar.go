package filterlang

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Expression is a disjunction of terms.
type Expression struct {
	Terms []*Term `parser:"@@ ( 'or' @@ )*"`
}

// Term is a conjunction of factors.
type Term struct {
	Factors []*Factor `parser:"@@ ( 'and' @@ )*"`
}

// Factor is a parenthesized expression or a single comparison.
type Factor struct {
	Group      *Expression `parser:"  '(' @@ ')'"`
	Comparison *Comparison `parser:"| @@"`
}

// Comparison tests one property.
type Comparison struct {
	Property string   `parser:"@Ident"`
	Between  *Range   `parser:"( 'between' @@"`
	In       []*Value `parser:"| 'in' '(' @@ ( ',' @@ )* ')'"`
	Operator string   `parser:"| @Operator"`
	Value    *Value   `parser:"  @@ )"`
}

// Range is the inclusive bound pair of a between comparison.
type Range struct {
	Start *Value `parser:"@@ 'and'"`
	End   *Value `parser:"@@"`
}

// Value is a literal.
type Value struct {
	String *string `parser:"  @String"`
	Number *string `parser:"| @Number"`
	Bool   *string `parser:"| @( 'true' | 'false' )"`
	Null   bool    `parser:"| @'null'"`
}

var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "Keyword", Pattern: `(?i)\b(and|or|between|in|true|false|null)\b`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(''|[^'])*'`},
	{Name: "Number", Pattern: `-?\d+(\.\d+)?([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*`},
	{Name: "Operator", Pattern: `[=<>]`},
	{Name: "Punct", Pattern: `[(),]`},
})

var filterParser = participle.MustBuild[Expression](
	participle.Lexer(filterLexer),
	participle.Elide("whitespace"),
	participle.CaseInsensitive("Keyword"),
)
