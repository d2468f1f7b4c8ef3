package examples

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// defaultBuiltins are JavaScript/TypeScript globals that example code may
// reference without them being exports of the audited package.
var defaultBuiltins = []string{
	"Array", "ArrayBuffer", "BigInt", "Boolean", "DataView", "Date",
	"Error", "EvalError", "Function", "Infinity", "Intl", "JSON", "Map",
	"Math", "NaN", "Number", "Object", "Promise", "Proxy", "RangeError",
	"ReferenceError", "Reflect", "RegExp", "Set", "String", "Symbol",
	"SyntaxError", "TypeError", "URIError", "URL", "URLSearchParams",
	"WeakMap", "WeakSet",
	"console", "document", "fetch", "globalThis", "localStorage",
	"navigator", "process", "queueMicrotask", "sessionStorage",
	"setInterval", "setTimeout", "clearInterval", "clearTimeout",
	"structuredClone", "undefined", "window",
	"require", "module", "exports", "Buffer", "__dirname", "__filename",
}

// Allowlist holds the set of identifiers treated as known globals during
// example reference analysis.
type Allowlist struct {
	names map[string]struct{}
}

// DefaultAllowlist returns the built-in JS/TS global allowlist.
func DefaultAllowlist() *Allowlist {
	a := &Allowlist{names: make(map[string]struct{}, len(defaultBuiltins))}
	for _, n := range defaultBuiltins {
		a.names[n] = struct{}{}
	}
	return a
}

// allowlistFile is the TOML shape of a user-provided allowlist overlay.
type allowlistFile struct {
	Identifiers []string `toml:"identifiers"`
}

// LoadFile merges additional identifiers from a TOML file:
//
//	identifiers = ["myGlobal", "jQuery"]
func (a *Allowlist) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file allowlistFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return err
	}

	for _, n := range file.Identifiers {
		if n != "" {
			a.names[n] = struct{}{}
		}
	}
	return nil
}

// IsBuiltIn reports whether the identifier is a known global.
func (a *Allowlist) IsBuiltIn(name string) bool {
	_, ok := a.names[name]
	return ok
}
