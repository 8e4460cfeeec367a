package diagfmt

import (
	"fmt"
	"io"

	"github.com/alecthomas/repr"

	"reckon/internal/ast"
)

// arenaDump is the raw arena content behind one builder, 1-based like the IDs.
type arenaDump struct {
	Files     []ast.File
	Stmts     []ast.Stmt
	Lets      []ast.StmtLetData
	ExprStmts []ast.StmtExprData
	Exprs     []ast.Expr
	Numbers   []ast.ExprNumberData
	Binaries  []ast.ExprBinaryData
	Groups    []ast.ExprGroupData
	Variables []ast.ExprVariableData
	Strings   []string
}

// FormatASTRepr dumps every arena of tree as Go-syntax values, for
// debugging payload indices that the tree printers hide.
func FormatASTRepr(w io.Writer, tree *ast.Builder) error {
	if tree == nil {
		return fmt.Errorf("nil builder")
	}
	dump := arenaDump{
		Files:     tree.Files.Arena.Slice(),
		Stmts:     tree.Stmts.Arena.Slice(),
		Lets:      tree.Stmts.Lets.Slice(),
		ExprStmts: tree.Stmts.Exprs.Slice(),
		Exprs:     tree.Exprs.Arena.Slice(),
		Numbers:   tree.Exprs.Numbers.Slice(),
		Binaries:  tree.Exprs.Binaries.Slice(),
		Groups:    tree.Exprs.Groups.Slice(),
		Variables: tree.Exprs.Variables.Slice(),
		Strings:   tree.Strings.Snapshot(),
	}
	repr.New(w, repr.Indent("  "), repr.OmitEmpty(true)).Println(dump)
	return nil
}
