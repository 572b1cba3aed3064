package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Clause is anything that renders to a named-parameter SQL condition.
type Clause interface {
	GetWhereClause() (string, map[string]any)
}

// Filter is a single named-parameter condition. ArgName defaults to Field.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq in not_eq less_eq greater_eq is_null"`
	Table    string
}

func (f Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

func (f Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	if op, ok := comparisons[f.Operator]; ok {
		args[f.argName()] = f.Value

		return fmt.Sprintf("%s %s :%s", f.column(), op, f.argName()), args
	}

	switch f.Operator {
	case FilterOperatorIn:
		return f.inClause(args)
	case FilterIsNull:
		return f.column() + " IS NULL", args
	}

	return "", args
}

// inClause binds one parameter per element, name_0, name_1, ...
func (f Filter) inClause(args map[string]any) (string, map[string]any) {
	val := reflect.ValueOf(f.Value)

	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		args[f.argName()] = f.Value

		return fmt.Sprintf("%s IN (:%s)", f.column(), f.argName()), args
	}

	named := make([]string, val.Len())

	for idx := range val.Len() {
		name := fmt.Sprintf("%s_%d", f.argName(), idx)
		args[name] = val.Index(idx).Interface()
		named[idx] = ":" + name
	}

	return fmt.Sprintf("%s IN (%s)", f.column(), strings.Join(named, ", ")), args
}

// FilterGroup joins Filters, which hold Filter or nested FilterGroup values, with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	conditions := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		clause, ok := filter.(Clause)
		if !ok {
			continue
		}

		where, arg := clause.GetWhereClause()
		if where == "" {
			continue
		}

		conditions = append(conditions, where)
		maps.Copy(args, arg)
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "(" + strings.Join(conditions, " "+f.Operator+" ") + ")", args
}
