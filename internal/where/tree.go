package where

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Tree renders w as a tree: composite conditions become branches, leaves
// become nodes.
func Tree(w Where) treeprint.Tree {
	root := treeprint.NewWithRoot("WHERE")
	addConditions(root, w)
	return root
}

func addConditions(parent treeprint.Tree, w Where) {
	for _, c := range w.conditions {
		switch cond := c.(type) {
		case AndCondition:
			addGroup(parent, "AND", cond.Target)
		case OrCondition:
			addGroup(parent, "OR", cond.Target)
		default:
			parent.AddNode(describe(c))
		}
	}
}

func addGroup(parent treeprint.Tree, label string, target ConditionTarget) {
	wt, ok := target.(WhereConditionTarget)
	if !ok {
		parent.AddNode(fmt.Sprintf("%s on %s", label, targetLabel(target)))
		return
	}
	addConditions(parent.AddBranch(label), wt.Where)
}
