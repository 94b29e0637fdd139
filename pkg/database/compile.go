package database

import (
	"strings"

	"github.com/Payphone-Digital/jobboard/pkg/listing"
	"gorm.io/gorm/clause"
)

var (
	matchNone = clause.Expr{SQL: "FALSE"}
)

// Compile turns a filter document into a SQL condition over the columns the
// schema declares. Paths outside the schema never match, and their negations
// always do. A nil result means no restriction.
func Compile(filter listing.Filter, schema *listing.Schema) clause.Expression {
	exprs := compileAll(filter, schema)
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	}
	return clause.And(exprs...)
}

func compileAll(filter listing.Filter, schema *listing.Schema) []clause.Expression {
	var exprs []clause.Expression

	for _, key := range filter.Keys() {
		value := filter[key]

		switch key {
		case listing.OpAnd:
			for _, sub := range subFilters(value) {
				if expr := Compile(sub, schema); expr != nil {
					exprs = append(exprs, expr)
				}
			}
		case listing.OpOr:
			if expr := compileOr(subFilters(value), schema); expr != nil {
				exprs = append(exprs, expr)
			}
		default:
			if strings.HasPrefix(key, "$") {
				continue
			}
			exprs = append(exprs, compileField(key, value, schema)...)
		}
	}

	return exprs
}

func compileOr(filters []listing.Filter, schema *listing.Schema) clause.Expression {
	if len(filters) == 0 {
		return nil
	}

	alternatives := make([]clause.Expression, 0, len(filters))
	for _, sub := range filters {
		expr := Compile(sub, schema)
		if expr == nil {
			// One unrestricted branch makes the whole disjunction true.
			return nil
		}
		alternatives = append(alternatives, expr)
	}

	if len(alternatives) == 1 {
		return alternatives[0]
	}
	return clause.Or(alternatives...)
}

func subFilters(value any) []listing.Filter {
	switch v := value.(type) {
	case []listing.Filter:
		return v
	case []any:
		out := make([]listing.Filter, 0, len(v))
		for _, item := range v {
			switch f := item.(type) {
			case listing.Filter:
				out = append(out, f)
			case map[string]any:
				out = append(out, listing.Filter(f))
			}
		}
		return out
	}
	return nil
}

func compileField(key string, value any, schema *listing.Schema) []clause.Expression {
	ops, isOp := value.(listing.Op)
	if !isOp {
		if m, ok := value.(map[string]any); ok {
			ops = listing.Op(m)
		} else {
			ops = listing.Op{listing.OpEq: value}
		}
	}

	field, known := schema.Field(key)

	var exprs []clause.Expression
	for _, op := range ops.Keys() {
		if op == listing.OpOptions {
			continue
		}

		var expr clause.Expression
		switch {
		case !known:
			expr = compileUnknown(op, ops[op])
		case field.Through != "":
			expr = compileThrough(field, op, ops[op])
		default:
			expr = compileColumn(field, op, ops[op], ops[listing.OpOptions])
		}

		if expr != nil {
			exprs = append(exprs, expr)
		}
	}
	return exprs
}

// compileUnknown treats a path the schema does not know as absent on every row.
func compileUnknown(op string, operand any) clause.Expression {
	switch op {
	case listing.OpNe, listing.OpNin:
		return nil
	case listing.OpExists:
		if exists, _ := operand.(bool); !exists {
			return nil
		}
	}
	return matchNone
}

func compileThrough(field listing.Field, op string, operand any) clause.Expression {
	column := columnOf(field)

	switch op {
	case listing.OpEq:
		return clause.Expr{SQL: "? IN (" + field.Through + " = ?)", Vars: []any{column, operand}}
	case listing.OpNe:
		return clause.Expr{SQL: "? NOT IN (" + field.Through + " = ?)", Vars: []any{column, operand}}
	case listing.OpIn:
		values := asList(operand)
		if len(values) == 0 {
			return matchNone
		}
		return clause.Expr{SQL: "? IN (" + field.Through + " IN ?)", Vars: []any{column, values}}
	case listing.OpNin:
		values := asList(operand)
		if len(values) == 0 {
			return nil
		}
		return clause.Expr{SQL: "? NOT IN (" + field.Through + " IN ?)", Vars: []any{column, values}}
	case listing.OpExists:
		if exists, _ := operand.(bool); exists {
			return clause.Expr{SQL: "? IN (" + field.Through + " IS NOT NULL)", Vars: []any{column}}
		}
		return clause.Expr{SQL: "? NOT IN (" + field.Through + " IS NOT NULL)", Vars: []any{column}}
	}
	return matchNone
}

func compileColumn(field listing.Field, op string, operand, options any) clause.Expression {
	column := columnOf(field)

	switch op {
	case listing.OpEq:
		if operand == nil {
			return clause.Expr{SQL: "? IS NULL", Vars: []any{column}}
		}
		return clause.Eq{Column: column, Value: operand}
	case listing.OpNe:
		if operand == nil {
			return clause.Expr{SQL: "? IS NOT NULL", Vars: []any{column}}
		}
		return clause.Neq{Column: column, Value: operand}
	case listing.OpIn:
		values := asList(operand)
		if len(values) == 0 {
			return matchNone
		}
		return clause.IN{Column: column, Values: values}
	case listing.OpNin:
		values := asList(operand)
		if len(values) == 0 {
			return nil
		}
		return clause.Not(clause.IN{Column: column, Values: values})
	case listing.OpGt:
		return clause.Gt{Column: column, Value: operand}
	case listing.OpGte:
		return clause.Gte{Column: column, Value: operand}
	case listing.OpLt:
		return clause.Lt{Column: column, Value: operand}
	case listing.OpLte:
		return clause.Lte{Column: column, Value: operand}
	case listing.OpRegex:
		pattern, ok := operand.(string)
		if !ok || field.Kind != listing.KindString {
			return matchNone
		}
		operator := "~"
		if opts, _ := options.(string); strings.Contains(opts, "i") {
			operator = "~*"
		}
		return clause.Expr{SQL: "? " + operator + " ?", Vars: []any{column, pattern}}
	case listing.OpExists:
		if exists, _ := operand.(bool); exists {
			return clause.Expr{SQL: "? IS NOT NULL", Vars: []any{column}}
		}
		return clause.Expr{SQL: "? IS NULL", Vars: []any{column}}
	}

	// Unsupported operators are ignored rather than guessed at.
	return nil
}

func columnOf(field listing.Field) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: field.Column}
}

func asList(operand any) []any {
	switch v := operand.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case nil:
		return nil
	}
	return []any{operand}
}
