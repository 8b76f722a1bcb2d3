// Package harness runs filter expressions through both evaluation paths
// and checks that they agree.
//
// A Fixture loads records into an in-memory SQLite table shaped by an
// entity definition. SQLMatches runs the compiled MySQL-style SELECT
// against it; PredicateMatches runs the in-memory predicate over the same
// records. Both report matches as positions in the record list.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: orders
//	description: "What this scenario validates"
//	entity: ../orders.yaml
//	records:
//	  - { id: 1, city: Oslo }
//	  - { id: 2, city: Bergen }
//	cases:
//	  - expression: city = "Oslo"
//	    matches: [0]
//	    mysql: "(??.?? = ?)"
//	    postgres: '("orders"."city" = $1)'
//	  - expression: country = "NO"
//	    error: COLUMN_RESOLUTION
//
// Every case must select the same records on both paths. matches, mysql
// and postgres are optional extra expectations; error expects the case to
// fail with a message containing the given text.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/orders.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, c := range result.Cases {
//	        log.Println(c.Expression, c.Errors)
//	    }
//	}
package harness
