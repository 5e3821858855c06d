package irgen

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/ir"
)

// layoutClasses flattens every class's fields, parent fields first, into a
// dense 0-based index table registered in the module's Structs map. Runs
// before any function lowering so get_ptr/sizeof/bitcast sites can look up
// field indices immediately.
func (g *Generator) layoutClasses(classes []*ast.Class) {
	byName := make(map[string]*ast.Class, len(classes))
	for _, c := range classes {
		byName[c.Name] = c
	}
	for _, c := range classes {
		g.layoutClass(c, byName)
	}
}

func (g *Generator) layoutClass(c *ast.Class, byName map[string]*ast.Class) []ir.Field {
	if existing, ok := g.module.Structs[c.Name]; ok {
		return existing
	}

	var fields []ir.Field
	if c.ParentName != "" {
		if parent, ok := byName[c.ParentName]; ok {
			fields = append(fields, g.layoutClass(parent, byName)...)
		}
	}
	for _, m := range c.Members {
		if m.Var == nil {
			continue
		}
		fields = append(fields, ir.Field{Name: m.Var.Name, Type: g.irType(m.Var.VarType), Index: len(fields)})
	}
	g.module.Structs[c.Name] = fields
	return fields
}

func (g *Generator) layoutEnums(enums []*ast.Enum) {
	for _, e := range enums {
		next := 0
		var values []ir.EnumValue
		for _, entry := range e.Entries {
			v := next
			if entry.Value != nil {
				v = *entry.Value
			}
			next = v + 1
			values = append(values, ir.EnumValue{Name: entry.Name, Value: v})
		}
		g.module.Enums[e.Name] = values
	}
}
