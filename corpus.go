// (c) Copyright secureai's authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secureai

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupportedExtension is returned when a file's extension maps to no
// known grammar.
var ErrUnsupportedExtension = errors.New("unsupported source extension")

// SourceUnit is one parsed source file: its root-relative path, raw text
// lines, and syntax tree. Immutable for the duration of a scan.
type SourceUnit struct {
	Path  string
	Lines []string

	src  []byte
	tree *sitter.Tree
}

// Root returns the root syntax node of the unit.
func (u *SourceUnit) Root() *Node {
	if u == nil || u.tree == nil {
		return nil
	}
	return wrapNode(u.tree.RootNode(), u.src)
}

// Source returns the raw file content.
func (u *SourceUnit) Source() []byte { return u.src }

// Kind is the tagged-variant classification of a syntax node. Rules switch
// on Kind instead of inspecting raw grammar node types.
type Kind int

// Node kinds relevant to the rule set. Everything else is KindOther.
const (
	KindOther Kind = iota
	KindCall
	KindFunctionLike
	KindVariableDecl
	KindBinaryOp
	KindTemplateLiteral
	KindObjectLiteral
	KindArrayLiteral
	KindIdentifier
	KindMemberAccess
	KindStringLiteral
	KindComment
)

// Node is an opaque, read-only handle into a SourceUnit's tree.
type Node struct {
	n   *sitter.Node
	src []byte
}

func wrapNode(n *sitter.Node, src []byte) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n, src: src}
}

// Kind classifies the node into the engine's tagged variant.
func (n *Node) Kind() Kind {
	if n == nil || n.n == nil {
		return KindOther
	}
	switch n.n.Type() {
	case "call_expression":
		return KindCall
	case "function_declaration", "function", "function_expression",
		"arrow_function", "method_definition",
		"generator_function", "generator_function_declaration":
		return KindFunctionLike
	case "variable_declarator":
		return KindVariableDecl
	case "binary_expression":
		return KindBinaryOp
	case "template_string":
		return KindTemplateLiteral
	case "object":
		return KindObjectLiteral
	case "array":
		return KindArrayLiteral
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return KindIdentifier
	case "member_expression", "subscript_expression":
		return KindMemberAccess
	case "string":
		return KindStringLiteral
	case "comment":
		return KindComment
	}
	return KindOther
}

// GrammarType exposes the raw tree-sitter node type, for the few places
// a rule needs finer detail than Kind provides.
func (n *Node) GrammarType() string {
	if n == nil || n.n == nil {
		return ""
	}
	return n.n.Type()
}

// Line is the 1-based source line on which the node starts.
func (n *Node) Line() int {
	if n == nil || n.n == nil {
		return 0
	}
	return int(n.n.StartPoint().Row) + 1
}

// Text renders the node's source text.
func (n *Node) Text() string {
	if n == nil || n.n == nil {
		return ""
	}
	return n.n.Content(n.src)
}

// Parent returns the enclosing node, or nil at the root.
func (n *Node) Parent() *Node {
	if n == nil || n.n == nil {
		return nil
	}
	return wrapNode(n.n.Parent(), n.src)
}

// NamedChildren returns the named (non-punctuation) children in source order.
func (n *Node) NamedChildren() []*Node {
	if n == nil || n.n == nil {
		return nil
	}
	count := int(n.n.NamedChildCount())
	children := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, wrapNode(n.n.NamedChild(i), n.src))
	}
	return children
}

// ChildByField returns the child bound to a grammar field, or nil.
func (n *Node) ChildByField(name string) *Node {
	if n == nil || n.n == nil {
		return nil
	}
	return wrapNode(n.n.ChildByFieldName(name), n.src)
}

// Walk visits the node and its descendants in preorder (source order).
// Returning false from the visitor prunes the subtree below that node.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil || n.n == nil {
		return
	}
	if !visit(n) {
		return
	}
	count := int(n.n.NamedChildCount())
	for i := 0; i < count; i++ {
		wrapNode(n.n.NamedChild(i), n.src).Walk(visit)
	}
}

// Callee returns the callee expression of a call node, or nil.
func (n *Node) Callee() *Node {
	if n.Kind() != KindCall {
		return nil
	}
	return n.ChildByField("function")
}

// CalleeText is the textual rendering of the callee, empty for non-calls.
func (n *Node) CalleeText() string {
	return n.Callee().Text()
}

// Arguments returns the argument expressions of a call node in order.
func (n *Node) Arguments() []*Node {
	if n.Kind() != KindCall {
		return nil
	}
	args := n.ChildByField("arguments")
	if args == nil {
		return nil
	}
	return args.NamedChildren()
}

// ParamNames returns the declared parameter names of a function-like node.
// Destructured parameters contribute each bound identifier.
func (n *Node) ParamNames() []string {
	if n.Kind() != KindFunctionLike {
		return nil
	}
	// Arrow functions with a single bare parameter bind it to "parameter".
	if p := n.ChildByField("parameter"); p != nil {
		return []string{p.Text()}
	}
	params := n.ChildByField("parameters")
	if params == nil {
		return nil
	}
	var names []string
	for _, param := range params.NamedChildren() {
		if param.Kind() == KindIdentifier {
			names = append(names, param.Text())
			continue
		}
		// TS required/optional parameters and default/destructuring
		// patterns: take every identifier bound inside the pattern.
		param.Walk(func(c *Node) bool {
			if c.Kind() == KindIdentifier {
				names = append(names, c.Text())
			}
			return c.GrammarType() != "type_annotation"
		})
	}
	return names
}

// Identifiers collects the node's descendant identifier names, including
// the node itself when it is an identifier.
func (n *Node) Identifiers() []string {
	var ids []string
	n.Walk(func(c *Node) bool {
		if c.Kind() == KindIdentifier {
			ids = append(ids, c.Text())
		}
		return true
	})
	return ids
}

// RootIdentifier resolves the leftmost identifier of a member access chain
// (req.body.input -> "req"). For a bare identifier it returns the node's
// own text; otherwise "".
func (n *Node) RootIdentifier() string {
	cur := n
	for cur != nil && cur.Kind() == KindMemberAccess {
		cur = cur.ChildByField("object")
	}
	if cur != nil && cur.Kind() == KindIdentifier {
		return cur.Text()
	}
	return ""
}

// languageFor maps a source extension to its grammar.
func languageFor(path string) (*sitter.Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage(), nil
	case ".tsx":
		return tsx.GetLanguage(), nil
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage(), nil
	}
	return nil, ErrUnsupportedExtension
}

// ParseSource parses one file into a SourceUnit. The path selects the
// grammar and becomes the unit's identity; it should be root-relative
// with forward slashes.
func ParseSource(ctx context.Context, path string, src []byte) (*SourceUnit, error) {
	lang, err := languageFor(path)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	return &SourceUnit{
		Path:  path,
		Lines: strings.Split(string(src), "\n"),
		src:   src,
		tree:  tree,
	}, nil
}
