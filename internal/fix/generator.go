// Package fix provides SuggestedFix generation for livedce findings.
//
// # Fix Strategy
//
// The only rewrite offered is deleting a blank assignment whose right-hand
// side was removed entirely:
//
//	// Before
//	x := a + b
//	_ = x * c   // both instructions removed
//	use(x)
//
//	// After
//	x := a + b
//	use(x)
//
// A statement qualifies when:
//   - it is "_ = expr" with exactly one operand on each side
//   - it sits directly in a block or a case/comm clause
//   - every go/ssa instruction the function built for expr was removed
//   - every local variable expr mentions is still used elsewhere, so the
//     deletion cannot leave a "declared and not used" error behind
package fix

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/ssa"
)

// Generator generates SuggestedFix for findings.
type Generator struct {
	fset  *token.FileSet
	info  *types.Info
	files map[*token.File]*ast.File // token.File -> ast.File mapping
}

// New creates a new fix Generator.
func New(pass *analysis.Pass) *Generator {
	return NewGenerator(pass.Fset, pass.TypesInfo, pass.Files)
}

// NewGenerator creates a Generator over already type-checked files.
func NewGenerator(fset *token.FileSet, info *types.Info, files []*ast.File) *Generator {
	m := make(map[*token.File]*ast.File, len(files))
	for _, f := range files {
		if tf := fset.File(f.Pos()); tf != nil {
			m[tf] = f
		}
	}
	return &Generator{fset: fset, info: info, files: m}
}

// Generate returns the fix for a finding at pos inside fn, where removed
// holds every instruction of fn the dead code passes deleted.
// Returns nil if the finding cannot be auto-fixed.
func (g *Generator) Generate(fn *ssa.Function, pos token.Pos, removed map[ssa.Instruction]bool) []analysis.SuggestedFix {
	file := g.findFileContaining(pos)
	if file == nil {
		return nil
	}

	path, _ := astutil.PathEnclosingInterval(file, pos, pos)
	stmt, parent := innermostStmt(path)
	assign, ok := stmt.(*ast.AssignStmt)
	if !ok || !isBlankAssign(assign) {
		return nil
	}
	switch parent.(type) {
	case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause:
	default:
		return nil
	}

	rhs := assign.Rhs[0]
	if !allRemoved(fn, rhs, removed) {
		return nil
	}
	if !g.localsUsedElsewhere(path, rhs) {
		return nil
	}

	return []analysis.SuggestedFix{
		{
			Message: "Remove unused computation",
			TextEdits: []analysis.TextEdit{
				{Pos: assign.Pos(), End: assign.End()},
			},
		},
	}
}

// innermostStmt returns the innermost statement of path and its parent node.
func innermostStmt(path []ast.Node) (ast.Stmt, ast.Node) {
	for i, n := range path {
		if stmt, ok := n.(ast.Stmt); ok {
			if i+1 < len(path) {
				return stmt, path[i+1]
			}
			return stmt, nil
		}
	}
	return nil, nil
}

// isBlankAssign reports whether assign is "_ = expr".
func isBlankAssign(assign *ast.AssignStmt) bool {
	if assign.Tok != token.ASSIGN || len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
		return false
	}
	ident, ok := assign.Lhs[0].(*ast.Ident)
	return ok && ident.Name == "_"
}

// allRemoved reports whether every instruction of fn positioned inside expr
// is in removed. Closures in expr have their own functions and do not count.
func allRemoved(fn *ssa.Function, expr ast.Expr, removed map[ssa.Instruction]bool) bool {
	found := false
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			p := instr.Pos()
			if p < expr.Pos() || p >= expr.End() {
				continue
			}
			if !removed[instr] {
				return false
			}
			found = true
		}
	}
	return found
}

// localsUsedElsewhere reports whether every local variable expr reads is
// read again somewhere else in the enclosing top-level function.
// Parameters and package-level variables never need another use.
func (g *Generator) localsUsedElsewhere(path []ast.Node, expr ast.Expr) bool {
	var body *ast.BlockStmt
	var signatures []ast.Node
	for _, n := range path {
		switch n := n.(type) {
		case *ast.FuncLit:
			signatures = append(signatures, n.Type)
		case *ast.FuncDecl:
			signatures = append(signatures, n.Type)
			if n.Recv != nil {
				signatures = append(signatures, n.Recv)
			}
			body = n.Body
		}
	}
	if body == nil {
		return false
	}

	isParam := func(v *types.Var) bool {
		for _, sig := range signatures {
			if sig.Pos() <= v.Pos() && v.Pos() < sig.End() {
				return true
			}
		}
		return false
	}
	inExpr := func(p token.Pos) bool { return expr.Pos() <= p && p < expr.End() }

	locals := make(map[*types.Var]bool)
	ast.Inspect(expr, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		v, ok := g.info.Uses[id].(*types.Var)
		if !ok || v.IsField() || v.Parent() == nil || v.Parent().Parent() == types.Universe {
			// Fields, package-level variables.
			return true
		}
		if !inExpr(v.Pos()) && !isParam(v) {
			locals[v] = true
		}
		return true
	})
	if len(locals) == 0 {
		return true
	}

	usedElsewhere := make(map[*types.Var]bool)
	for _, id := range reads(body) {
		if inExpr(id.Pos()) {
			continue
		}
		if v, ok := g.info.Uses[id].(*types.Var); ok && locals[v] {
			usedElsewhere[v] = true
		}
	}
	return len(usedElsewhere) == len(locals)
}

// reads returns the identifiers of body that count as uses for the
// compiler's "declared and not used" check. A bare identifier being
// assigned to, as in "x = 1", "x += 1" or "x++", is not a use.
func reads(body *ast.BlockStmt) []*ast.Ident {
	written := make(map[*ast.Ident]bool)
	var ids []*ast.Ident
	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				if id, ok := lhs.(*ast.Ident); ok {
					written[id] = true
				}
			}
		case *ast.IncDecStmt:
			if id, ok := n.X.(*ast.Ident); ok {
				written[id] = true
			}
		case *ast.Ident:
			if !written[n] {
				ids = append(ids, n)
			}
		}
		return true
	})
	return ids
}

// findFileContaining finds the AST file containing the given position.
func (g *Generator) findFileContaining(pos token.Pos) *ast.File {
	tf := g.fset.File(pos)
	if tf == nil {
		return nil
	}
	return g.files[tf]
}
