package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/wherec/internal/entity"
	"github.com/roach88/wherec/internal/filterlang"
	"github.com/roach88/wherec/internal/querysql"
	"github.com/roach88/wherec/internal/where"
)

// Result is the outcome of a scenario.
type Result struct {
	Name string `json:"name"`

	// Pass is true when every case passed.
	Pass bool `json:"pass"`

	Cases []CaseResult `json:"cases"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Expression string   `json:"expression"`
	Pass       bool     `json:"pass"`
	SQL        []int    `json:"sql,omitempty"`
	Predicate  []int    `json:"predicate,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

func (r *CaseResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run loads the scenario's entity and records into a fresh in-memory
// database and evaluates every case against it.
//
// The returned error reports a scenario that could not be set up; failing
// cases are reported in the Result.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	def, err := entity.Load(s.Entity)
	if err != nil {
		return nil, err
	}

	fx, err := Load(ctx, def, s.Records)
	if err != nil {
		return nil, err
	}
	defer fx.Close()

	result := &Result{Name: s.Name, Pass: true, Cases: make([]CaseResult, 0, len(s.Cases))}
	for _, c := range s.Cases {
		cr := runCase(ctx, fx, def, s.Records, c)
		if !cr.Pass {
			result.Pass = false
		}
		result.Cases = append(result.Cases, cr)
	}

	slog.Debug("scenario complete", "name", s.Name, "pass", result.Pass, "cases", len(result.Cases))
	return result, nil
}

func runCase(ctx context.Context, fx *Fixture, def *entity.Definition, records []map[string]any, c Case) CaseResult {
	cr := CaseResult{Expression: c.Expression, Pass: true}

	err := evaluate(ctx, fx, def, records, c, &cr)
	switch {
	case c.Error != "" && err == nil:
		cr.addError("expected error containing %q, got none", c.Error)
	case c.Error != "" && !strings.Contains(err.Error(), c.Error):
		cr.addError("expected error containing %q, got %v", c.Error, err)
	case c.Error == "" && err != nil:
		cr.addError("%v", err)
	}
	return cr
}

// evaluate runs both paths and records expectation failures in cr. Only
// errors that stop evaluation are returned.
func evaluate(ctx context.Context, fx *Fixture, def *entity.Definition, records []map[string]any, c Case, cr *CaseResult) error {
	w, err := filterlang.Parse(c.Expression)
	if err != nil {
		return err
	}

	byPredicate, err := PredicateMatches(w, records)
	if err != nil {
		return err
	}
	bySQL, err := fx.SQLMatches(ctx, w)
	if err != nil {
		return err
	}
	cr.SQL, cr.Predicate = bySQL, byPredicate

	if !slices.Equal(bySQL, byPredicate) {
		cr.addError("SQL matched %v, predicate matched %v", bySQL, byPredicate)
	}
	if c.Matches != nil && !slices.Equal(byPredicate, c.Matches) {
		cr.addError("expected matches %v, got %v", c.Matches, byPredicate)
	}

	for _, want := range []struct {
		dialect querysql.Dialect
		text    string
	}{
		{querysql.MySQL, c.MySQL},
		{querysql.Postgres, c.Postgres},
	} {
		if want.text == "" {
			continue
		}
		got, err := whereText(want.dialect, w, def)
		if err != nil {
			return err
		}
		if got != want.text {
			cr.addError("%s: expected %s, got %s", want.dialect, want.text, got)
		}
	}
	return nil
}

// whereText renders the finalized predicate chain of w in dialect d.
func whereText(d querysql.Dialect, w where.Where, def *entity.Definition) (string, error) {
	q, err := querysql.Compile(d, w, def.Table, def.Fields, def.Temporal)
	if err != nil {
		return "", err
	}
	return d.Finalize(q.BuildQueryString()), nil
}
