package profile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mandev/pkg/errors"
)

// ConfigFilenames are probed in order by [LoadDir].
var ConfigFilenames = []string{".mandev.toml", ".mandev.yaml", ".mandev.yml"}

// Decode parses an upstream JSON payload.
func Decode(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "decode profile JSON")
	}
	return &doc, nil
}

// LoadFile reads a profile from a TOML, YAML or JSON file, chosen by
// extension.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse %s", filepath.Base(path))
	}
	return doc, nil
}

// Parse decodes data according to ext (".toml", ".yaml", ".yml", ".json").
func Parse(data []byte, ext string) (*Document, error) {
	var doc Document
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported profile format %q", ext)
	}
	return &doc, nil
}

// FindConfig returns the first of [ConfigFilenames] present in dir.
func FindConfig(dir string) (string, error) {
	for _, name := range ConfigFilenames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeNotFound,
		"no %s found in %s", strings.Join(ConfigFilenames, ", "), dir)
}

// LoadDir loads the first config file found in dir.
func LoadDir(dir string) (*Document, string, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, "", err
	}
	doc, err := LoadFile(path)
	return doc, path, err
}

// ConfigJSON returns the authored half of doc as indented JSON with sorted
// keys. Stats and service-managed fields are dropped, so a local file and
// the upstream copy of the same config produce identical bytes.
func ConfigJSON(doc *Document) ([]byte, error) {
	cfg := *doc
	cfg.Username = ""
	cfg.GitHubStats = nil
	cfg.NpmStats = nil
	cfg.PyPIStats = nil
	cfg.DevToStats = nil
	cfg.HashnodeStats = nil
	cfg.GitHubVerified = false
	cfg.ViewCount = 0

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	// Round-trip through a map so keys come out sorted.
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// MarshalTOML encodes the authored half of doc as TOML.
func MarshalTOML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
