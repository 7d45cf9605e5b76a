package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
	"github.com/goliatone/go-pageblocks/pkg/render"
)

// Problem is one finding of Validate.
type Problem = render.Diagnostic

// Validate reports blocks of unknown kinds and stored values their field
// would reject. Unknown kinds are listed first, in document order.
func (o *Orchestrator) Validate(ctx context.Context, req Request) ([]Problem, error) {
	page, err := o.page(ctx, req)
	if err != nil {
		return nil, err
	}
	nodes, err := render.Walk(page, o.schema)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	problems := render.Diagnose(nodes)
	for _, field := range o.schema.Fields {
		path, err := field.Path()
		if err != nil {
			continue
		}
		if value, err := page.Get(path); err == nil {
			if problem, bad := check(field, value, path, ""); bad {
				problems = append(problems, problem)
			}
		}
	}
	problems = append(problems, checkNodes(nodes)...)
	return problems, nil
}

func checkNodes(nodes []render.Node) []Problem {
	var problems []Problem
	for _, node := range nodes {
		if !node.Renderable() {
			continue
		}
		for _, field := range node.Template.Fields {
			if field.Widget == fields.WidgetBlocks {
				problems = append(problems, checkNodes(node.Children(field.Name))...)
				continue
			}
			rel, err := field.Path()
			if err != nil {
				continue
			}
			value, ok := node.Block.Value(rel)
			if !ok {
				continue
			}
			if problem, bad := check(field, value, node.Position.Path.Concat(rel), node.Block.Kind); bad {
				problems = append(problems, problem)
			}
		}
	}
	return problems
}

func check(field fields.Field, value any, path content.Path, kind content.Kind) (Problem, bool) {
	if _, err := field.Coerce(value); err != nil {
		return Problem{Path: path.String(), Kind: kind, Message: err.Error()}, true
	}
	return Problem{}, false
}
