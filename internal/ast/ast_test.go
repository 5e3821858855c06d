package ast

import (
	"testing"

	"github.com/alir-lang/alirc/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestLiteralImplementsExpr(t *testing.T) {
	var _ Expr = &Literal{Kind: IntLit, Value: 42}
	var _ Expr = &VarRef{Name: "x"}
	var _ Expr = &BinaryOp{Op: "+"}
	var _ Expr = &Cast{VarType: types.NewScalar(types.Int)}
}

func TestStmtNodesImplementStmt(t *testing.T) {
	var _ Stmt = &VarDecl{Name: "x"}
	var _ Stmt = &If{}
	var _ Stmt = &While{}
	var _ Stmt = &Loop{}
	var _ Stmt = &ForIn{}
	var _ Stmt = &Switch{}
	var _ Stmt = &Case{}
	var _ Stmt = &Break{}
	var _ Stmt = &Continue{}
	var _ Stmt = &Emit{}
	var _ Stmt = &FuncDef{}
	var _ Stmt = &Class{}
	var _ Stmt = &Enum{}
	var _ Stmt = &Namespace{}
	var _ Stmt = &Assign{}
	var _ Stmt = &Return{}
}

func TestPositionIsCarried(t *testing.T) {
	pos := Pos{File: "f.alir", Line: 3, Col: 7}
	lit := &Literal{Kind: IntLit, Value: 1, Pos: pos}
	assert.Equal(t, pos, lit.Position())
	assert.Equal(t, "f.alir:3:7", pos.String())
}
