//go:build cgo

package examples

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TreeSitterParser parses example snippets with the tree-sitter TypeScript
// grammar, which also accepts plain JavaScript. It implements Parser.
type TreeSitterParser struct {
	parser *sitter.Parser
}

// NewParser creates a tree-sitter backed example parser.
func NewParser() *TreeSitterParser {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	return &TreeSitterParser{parser: p}
}

// IsAvailable reports whether AST-based example analysis is available.
func IsAvailable() bool {
	return true
}

// Parse extracts identifier usages and syntax diagnostics from example
// source. It never fails: unparsable input yields a result whose
// SyntaxErrors describe the problem.
func (p *TreeSitterParser) Parse(source string) *ParseResult {
	result := &ParseResult{}

	src := []byte(source)
	tree, err := p.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		result.SyntaxErrors = append(result.SyntaxErrors, fmt.Sprintf("parse failed: %v", err))
		return result
	}

	root := tree.RootNode()
	p.walk(root, src, result)
	return result
}

func (p *TreeSitterParser) walk(node *sitter.Node, src []byte, result *ParseResult) {
	if node == nil {
		return
	}

	switch {
	case node.IsError():
		result.SyntaxErrors = append(result.SyntaxErrors, fmt.Sprintf(
			"syntax error at line %d, column %d",
			node.StartPoint().Row+1, node.StartPoint().Column+1))
	case node.IsMissing():
		result.SyntaxErrors = append(result.SyntaxErrors, fmt.Sprintf(
			"missing %s at line %d, column %d",
			node.Type(), node.StartPoint().Row+1, node.StartPoint().Column+1))
	}

	switch node.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		name := string(src[node.StartByte():node.EndByte()])
		ctx, isDecl := classifyIdentifier(node)
		result.Identifiers = append(result.Identifiers, Identifier{
			Name:          name,
			Context:       ctx,
			IsDeclaration: isDecl,
		})
	case "type_identifier":
		name := string(src[node.StartByte():node.EndByte()])
		isDecl := isDeclarationName(node)
		result.Identifiers = append(result.Identifiers, Identifier{
			Name:          name,
			Context:       ContextType,
			IsDeclaration: isDecl,
		})
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		p.walk(node.Child(i), src, result)
	}
}

// classifyIdentifier determines usage context and declaration status from
// the identifier's parent node.
func classifyIdentifier(node *sitter.Node) (RefContext, bool) {
	if node.Type() == "shorthand_property_identifier_pattern" {
		// Destructuring pattern binding: const {a} = ...
		return ContextValue, true
	}

	parent := node.Parent()
	if parent == nil {
		return ContextValue, false
	}

	if isDeclarationName(node) {
		return ContextValue, true
	}

	switch parent.Type() {
	case "call_expression":
		if fn := parent.ChildByFieldName("function"); fn != nil && fn.Equal(node) {
			return ContextCall, false
		}
	case "new_expression":
		if ctor := parent.ChildByFieldName("constructor"); ctor != nil && ctor.Equal(node) {
			return ContextCall, false
		}
	}

	return ContextValue, false
}

// isDeclarationName reports whether the identifier is the name being bound
// by a surrounding declaration, parameter, or import.
func isDeclarationName(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}

	switch parent.Type() {
	case "variable_declarator",
		"function_declaration",
		"generator_function_declaration",
		"class_declaration",
		"abstract_class_declaration",
		"interface_declaration",
		"type_alias_declaration",
		"enum_declaration",
		"method_definition":
		name := parent.ChildByFieldName("name")
		return name != nil && name.Equal(node)
	case "required_parameter", "optional_parameter", "rest_pattern":
		return true
	case "import_specifier", "namespace_import":
		return true
	case "array_pattern", "object_pattern":
		// Destructuring binding positions
		return true
	case "catch_clause":
		param := parent.ChildByFieldName("parameter")
		return param != nil && param.Equal(node)
	case "type_parameter":
		return true
	}

	return false
}
