package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"reckon/internal/ast"
	"reckon/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// jsonBuilder collects nodes into the children list of the node being visited.
type jsonBuilder struct {
	*ast.Walker
	out *[]ASTNodeOutput
}

// BuildASTOutput converts a parsed file into its JSON shape.
func BuildASTOutput(tree *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := tree.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not found", fileID)
	}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	b := &jsonBuilder{out: &root.Children}
	b.Walker = ast.NewWalker(tree, b)
	b.WalkFile(fileID)
	return root, nil
}

func FormatASTJSON(w io.Writer, tree *ast.Builder, fileID ast.FileID) error {
	root, err := BuildASTOutput(tree, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// push appends node and runs children with node as their parent.
func (b *jsonBuilder) push(node ASTNodeOutput, children func()) {
	*b.out = append(*b.out, node)
	if children == nil {
		return
	}
	parent := b.out
	b.out = &(*parent)[len(*parent)-1].Children
	children()
	b.out = parent
}

func (b *jsonBuilder) VisitExprStmt(id ast.StmtID, data *ast.StmtExprData) {
	stmt := b.Tree.Stmts.Get(id)
	b.push(ASTNodeOutput{Type: "Stmt", Kind: "Expr", Span: stmt.Span}, func() {
		b.VisitExpr(data.Expr)
	})
}

func (b *jsonBuilder) VisitLet(id ast.StmtID, data *ast.StmtLetData) {
	stmt := b.Tree.Stmts.Get(id)
	node := ASTNodeOutput{
		Type:   "Stmt",
		Kind:   "Let",
		Span:   stmt.Span,
		Fields: map[string]any{"name": b.Tree.Name(data.Name)},
	}
	b.push(node, func() { b.VisitExpr(data.Value) })
}

func (b *jsonBuilder) VisitNumber(id ast.ExprID, data *ast.ExprNumberData) {
	b.push(ASTNodeOutput{
		Type:   "Expr",
		Kind:   ast.ExprNumber.String(),
		Span:   b.Tree.Exprs.Get(id).Span,
		Text:   data.Token.Text,
		Fields: map[string]any{"value": data.Value},
	}, nil)
}

func (b *jsonBuilder) VisitBinary(id ast.ExprID, data *ast.ExprBinaryData) {
	node := ASTNodeOutput{
		Type:   "Expr",
		Kind:   ast.ExprBinary.String(),
		Span:   b.Tree.Exprs.Get(id).Span,
		Fields: map[string]any{"op": data.Op.Kind.Name()},
	}
	b.push(node, func() { b.Walker.VisitBinary(id, data) })
}

func (b *jsonBuilder) VisitGroup(id ast.ExprID, data *ast.ExprGroupData) {
	node := ASTNodeOutput{Type: "Expr", Kind: ast.ExprGroup.String(), Span: b.Tree.Exprs.Get(id).Span}
	b.push(node, func() { b.Walker.VisitGroup(id, data) })
}

func (b *jsonBuilder) VisitVariable(id ast.ExprID, data *ast.ExprVariableData) {
	b.push(ASTNodeOutput{
		Type: "Expr",
		Kind: ast.ExprVariable.String(),
		Span: b.Tree.Exprs.Get(id).Span,
		Text: b.Tree.Name(data.Name),
	}, nil)
}

func (b *jsonBuilder) VisitError(_ ast.ExprID, span source.Span) {
	b.push(ASTNodeOutput{Type: "Expr", Kind: ast.ExprError.String(), Span: span}, nil)
}
