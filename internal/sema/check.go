package sema

import (
	"github.com/alir-lang/alirc/internal/ast"
	"github.com/alir-lang/alirc/internal/diag"
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/types"
)

// checkProgram is Pass 2: walk the program in order, entering each
// function's scope, binding `this` (methods) and parameters, then
// checking the body against the names and types Pass 1 registered.
func (a *Analyzer) checkProgram(prog *ast.Program) {
	a.checkDecls(prog.Decls)
}

func (a *Analyzer) checkDecls(decls []ast.Node) {
	for _, d := range decls {
		a.checkDecl(d)
	}
}

func (a *Analyzer) checkDecl(node ast.Node) {
	switch n := node.(type) {
	case *ast.FuncDef:
		a.checkFunc(n)
	case *ast.Class:
		a.checkClass(n)
	case *ast.Namespace:
		a.checkNamespace(n)
	case *ast.Enum:
		// members were fully resolved during Scan
	}
}

func (a *Analyzer) checkClass(c *ast.Class) {
	classSym, ok := a.classes[c.Name]
	if !ok || classSym.Inner == nil {
		return
	}
	saved := a.current
	a.current = classSym.Inner
	for i := range c.Members {
		if c.Members[i].Method != nil {
			a.checkFunc(c.Members[i].Method)
		}
	}
	a.current = saved
}

func (a *Analyzer) checkNamespace(n *ast.Namespace) {
	sym, ok := a.current.LookupLocal(n.Name)
	if !ok || sym.Inner == nil {
		return
	}
	saved := a.current
	a.current = sym.Inner
	a.checkDecls(n.Body)
	a.current = saved
}

func (a *Analyzer) checkFunc(f *ast.FuncDef) {
	if f.Body == nil {
		return // declaration only, nothing to check
	}
	fnScope := types.NewScope(types.FunctionScope, a.current)
	ret := f.RetType
	fnScope.ReturnType = &ret

	if f.ClassName != "" {
		thisType := types.NewClass(f.ClassName).PointerTo()
		_ = fnScope.Define(&types.Symbol{Name: "this", Kind: types.VarSymbol, Type: thisType, Initialized: true})
	}
	for _, p := range f.Params {
		sym := &types.Symbol{Name: p.Name, Kind: types.VarSymbol, Type: p.Type, Mutable: true, Initialized: true}
		if err := fnScope.Define(sym); err != nil {
			a.reportError(errors.SEM002, f.Pos, "parameter %q already declared: %s", p.Name, err)
		}
	}

	savedScope, savedFlux := a.current, a.inFlux
	a.current, a.inFlux = fnScope, f.IsFlux
	a.checkBlock(f.Body)
	a.current, a.inFlux = savedScope, savedFlux
}

func (a *Analyzer) checkBlock(stmts []ast.Node) {
	for _, s := range stmts {
		a.checkStmt(s)
	}
}

// checkScopedBlock pushes a fresh block scope for a nested control-flow
// body, so a `let` inside an if/while/loop/for-in/switch arm does not leak
// into the enclosing block.
func (a *Analyzer) checkScopedBlock(stmts []ast.Node) {
	saved := a.current
	a.current = types.NewScope(types.BlockScope, saved)
	a.checkBlock(stmts)
	a.current = saved
}

func (a *Analyzer) checkStmt(node ast.Node) {
	switch n := node.(type) {
	case *ast.VarDecl:
		a.checkVarDecl(n, true)
	case *ast.Assign:
		a.checkAssign(n)
	case *ast.Return:
		a.checkReturn(n)
	case *ast.If:
		a.checkIf(n)
	case *ast.While:
		a.checkWhile(n)
	case *ast.Loop:
		a.checkLoop(n)
	case *ast.ForIn:
		a.checkForIn(n)
	case *ast.Switch:
		a.checkSwitch(n)
	case *ast.Break:
		if a.inLoop == 0 && a.inSwitch == 0 {
			a.reportError(errors.SEM006, n.Pos, "break used outside any loop or switch")
		}
	case *ast.Continue:
		if a.inLoop == 0 {
			a.reportError(errors.SEM007, n.Pos, "continue used outside any loop")
		}
	case *ast.Emit:
		a.checkEmit(n)
	case ast.Expr:
		a.checkExpr(n)
	}
}

func (a *Analyzer) checkVarDecl(v *ast.VarDecl, register bool) types.Type {
	var initType types.Type
	hasInit := v.Initializer != nil
	if hasInit {
		initType = a.checkExpr(v.Initializer)
	}

	declared := v.VarType
	if declared.IsAuto() {
		switch {
		case !hasInit:
			a.reportError(errors.SEM004, v.Pos, "%q has no initializer and no type annotation", v.Name)
			declared = types.NewScalar(types.Unknown)
		case initType.IsVoid() || initType.IsUnknown():
			a.reportError(errors.SEM005, v.Pos, "cannot infer type of %q from a void or unknown initializer", v.Name)
			declared = types.NewScalar(types.Unknown)
		default:
			declared = initType
		}
		v.VarType = declared
	} else if hasInit {
		a.checkAssignable(initType, declared, v.Pos)
	}

	if register {
		sym := &types.Symbol{Name: v.Name, Kind: types.VarSymbol, Type: declared, Mutable: v.IsMutable, Initialized: hasInit}
		if err := a.current.Define(sym); err != nil {
			a.reportError(errors.SEM002, v.Pos, "%q already declared: %s", v.Name, err)
		}
	}
	return declared
}

// checkAssignable classifies src against dst and reports an error for an
// incompatible pair, or an info diagnostic for the two conversions that are
// accepted but worth flagging (narrowing numeric casts, string/char-pointer
// conversion). src == Unknown is a poison value from an earlier error and
// never re-reports.
func (a *Analyzer) checkAssignable(src, dst types.Type, pos ast.Pos) {
	if src.IsUnknown() {
		return
	}
	switch types.Compatibility(src, dst) {
	case types.Incompatible:
		a.reportError(errors.SEM003, pos, "cannot assign %s to %s", src, dst)
	case types.NarrowingNumeric:
		a.reportInfo(errors.SEM013, pos, "implicit narrowing conversion from %s to %s", src, dst)
	case types.StringCharConversion:
		a.reportInfo(errors.SEM013, pos, "implicit conversion between %s and %s", src, dst)
	}
}

func (a *Analyzer) checkAssign(asn *ast.Assign) {
	var dstType types.Type

	if asn.Target != nil {
		dstType = a.checkExpr(asn.Target)
		if asn.Index != nil {
			a.checkExpr(asn.Index)
		}
	} else {
		sym, ok := a.lookup(a.current, asn.Name)
		if !ok {
			a.reportNameError(asn.Pos, asn.Name)
			dstType = types.NewScalar(types.Unknown)
		} else {
			dstType = sym.Type
			if sym.Kind == types.VarSymbol && !sym.Mutable && sym.Initialized {
				a.reportError(errors.SEM011, asn.Pos, "cannot assign to immutable binding %q", asn.Name)
			}
		}
	}

	valType := a.checkExpr(asn.Value)
	a.checkAssignable(valType, dstType, asn.Pos)
}

func (a *Analyzer) checkReturn(r *ast.Return) {
	fnScope := a.current.EnclosingFunction()
	var expected types.Type
	if fnScope != nil && fnScope.ReturnType != nil {
		expected = *fnScope.ReturnType
	}
	if r.Value == nil {
		if fnScope != nil && !expected.IsVoid() {
			a.reportError(errors.SEM008, r.Pos, "missing return value, function returns %s", expected)
		}
		return
	}
	actual := a.checkExpr(r.Value)
	if fnScope != nil {
		a.checkAssignable(actual, expected, r.Pos)
	}
}

func (a *Analyzer) checkIf(n *ast.If) {
	a.checkExpr(n.Cond)
	a.checkScopedBlock(n.ThenBody)
	if n.ElseBody != nil {
		a.checkScopedBlock(n.ElseBody)
	}
}

func (a *Analyzer) checkWhile(n *ast.While) {
	a.checkExpr(n.Cond)
	a.inLoop++
	a.checkScopedBlock(n.Body)
	a.inLoop--
}

func (a *Analyzer) checkLoop(n *ast.Loop) {
	if n.Iterations != nil {
		a.checkExpr(n.Iterations)
	}
	a.inLoop++
	a.checkScopedBlock(n.Body)
	a.inLoop--
}

func (a *Analyzer) checkForIn(n *ast.ForIn) {
	collType := a.checkExpr(n.Collection)
	elemType := n.IterType
	if elemType.IsUnknown() || elemType.IsAuto() {
		if collType.IsArray() || collType.IsPointer() {
			elemType = collType.ElementType()
			elemType.ArraySize = 0
		} else {
			elemType = collType
		}
		n.IterType = elemType
	}

	a.inLoop++
	saved := a.current
	a.current = types.NewScope(types.BlockScope, saved)
	_ = a.current.Define(&types.Symbol{Name: n.VarName, Kind: types.VarSymbol, Type: elemType, Mutable: true, Initialized: true})
	a.checkBlock(n.Body)
	a.current = saved
	a.inLoop--
}

func (a *Analyzer) checkSwitch(n *ast.Switch) {
	a.checkExpr(n.Condition)
	a.inSwitch++
	for _, c := range n.Cases {
		if c.Value != nil {
			a.checkExpr(c.Value)
		}
		a.checkScopedBlock(c.Body)
	}
	if n.DefaultCase != nil {
		a.checkScopedBlock(n.DefaultCase)
	}
	a.inSwitch--
}

func (a *Analyzer) checkEmit(e *ast.Emit) {
	if !a.inFlux {
		a.reportError(errors.SEM012, e.Pos, "emit used outside of a flux function")
	}
	a.checkExpr(e.Value)
}

// reportNameError reports an undefined-name error and, when a visible name
// is close enough, attaches a "did you mean" hint at the same span.
func (a *Analyzer) reportNameError(pos ast.Pos, name string) {
	a.reportError(errors.SEM001, pos, "undefined name %q", name)
	if best, ok := didYouMean(name, visibleNames(a.current)); ok {
		a.sink.Hint(diag.SpanOf(pos), "did you mean \""+best+"\"?")
	}
}
