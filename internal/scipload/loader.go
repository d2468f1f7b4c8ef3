// Package scipload builds an export manifest from a SCIP index, letting
// docdrift audit documentation coverage for repositories indexed by SCIP
// tooling. Only names, kinds, and documentation text survive the
// conversion; SCIP carries no structured signature schemas, so structural
// drift detection is limited to what the documentation itself declares.
package scipload

import (
	"fmt"
	"os"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"docdrift/internal/errors"
	"docdrift/internal/manifest"
)

// LoadManifest reads a SCIP index and converts its symbols into an export
// manifest.
func LoadManifest(path string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ManifestMissing,
				fmt.Sprintf("SCIP index not found at %s", path), err)
		}
		return nil, errors.New(errors.IndexInvalid,
			fmt.Sprintf("failed to read SCIP index %s", path), err)
	}

	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, errors.New(errors.IndexInvalid,
			fmt.Sprintf("failed to parse SCIP index %s", path), err)
	}

	m := &manifest.Manifest{
		Meta: map[string]interface{}{
			"source": "scip",
			"tool":   index.GetMetadata().GetToolInfo().GetName(),
		},
	}

	seen := make(map[string]struct{})
	for _, doc := range index.GetDocuments() {
		for _, sym := range doc.GetSymbols() {
			addSymbol(m, sym, seen)
		}
	}
	for _, sym := range index.GetExternalSymbols() {
		addSymbol(m, sym, seen)
	}

	return m, nil
}

func addSymbol(m *manifest.Manifest, sym *scippb.SymbolInformation, seen map[string]struct{}) {
	kind, ok := mapKind(sym.GetKind())
	if !ok {
		return
	}
	if _, dup := seen[sym.GetSymbol()]; dup {
		return
	}
	seen[sym.GetSymbol()] = struct{}{}

	name := sym.GetDisplayName()
	if name == "" {
		name = lastDescriptor(sym.GetSymbol())
	}
	if name == "" {
		return
	}

	m.Exports = append(m.Exports, manifest.Export{
		ID:          sym.GetSymbol(),
		Name:        name,
		Kind:        kind,
		Description: strings.Join(sym.GetDocumentation(), "\n"),
	})
}

// mapKind converts SCIP symbol kinds into manifest kinds; symbols with no
// manifest counterpart (packages, files, locals) are skipped.
func mapKind(kind scippb.SymbolInformation_Kind) (manifest.Kind, bool) {
	switch kind {
	case scippb.SymbolInformation_Function, scippb.SymbolInformation_Method:
		return manifest.KindFunction, true
	case scippb.SymbolInformation_Class:
		return manifest.KindClass, true
	case scippb.SymbolInformation_Interface, scippb.SymbolInformation_Trait:
		return manifest.KindInterface, true
	case scippb.SymbolInformation_Enum:
		return manifest.KindEnum, true
	case scippb.SymbolInformation_TypeAlias, scippb.SymbolInformation_Type:
		return manifest.KindType, true
	case scippb.SymbolInformation_Variable, scippb.SymbolInformation_Constant:
		return manifest.KindVariable, true
	default:
		return "", false
	}
}

// lastDescriptor extracts a display name from a raw SCIP symbol string by
// taking the final descriptor segment and trimming its suffix markers.
func lastDescriptor(symbol string) string {
	fields := strings.Fields(symbol)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	last = strings.TrimRight(last, "().#/")
	if i := strings.LastIndexAny(last, "/#."); i >= 0 {
		last = last[i+1:]
	}
	return strings.TrimSuffix(last, "`")
}
