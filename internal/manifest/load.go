package manifest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"docdrift/internal/errors"
)

// Load reads an export manifest from a JSON or YAML file, chosen by
// extension (.yaml/.yml for YAML, anything else decodes as JSON).
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			auditErr := errors.New(
				errors.ManifestMissing,
				fmt.Sprintf("export manifest not found at %s", path),
				err,
			)
			auditErr.SuggestedFixes = errors.GetSuggestedFixes(errors.ManifestMissing)
			return nil, auditErr
		}
		return nil, errors.New(errors.ManifestInvalid,
			fmt.Sprintf("failed to read manifest %s", path), err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, errors.New(errors.ManifestInvalid,
			fmt.Sprintf("failed to decode manifest %s", path), err)
	}

	return &m, nil
}

// Hash returns the content hash of a manifest file, used as the report
// cache key. The hash covers the raw bytes, so any edit invalidates
// cached reports.
func Hash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
