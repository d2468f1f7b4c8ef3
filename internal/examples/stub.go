//go:build !cgo

package examples

// TreeSitterParser is the stub example parser for non-CGO builds.
type TreeSitterParser struct{}

// NewParser returns a stub parser when CGO is disabled.
func NewParser() *TreeSitterParser {
	return &TreeSitterParser{}
}

// IsAvailable reports whether AST-based example analysis is available.
func IsAvailable() bool {
	return false
}

// Parse returns an empty result; example analysis needs tree-sitter.
// Reporting nothing keeps the pipeline total: missing tooling never
// produces spurious drift.
func (p *TreeSitterParser) Parse(source string) *ParseResult {
	return &ParseResult{}
}
