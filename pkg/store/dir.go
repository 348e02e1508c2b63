package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/mandev/pkg/errors"
	"github.com/matzehuels/mandev/pkg/profile"
)

// dirExtensions are probed in order for <dir>/<username><ext>.
var dirExtensions = []string{".json", ".toml", ".yaml", ".yml"}

// DirSource serves profiles from files named after their usernames.
type DirSource struct {
	Dir string
}

// NewDirSource returns a source reading from dir, which must exist.
func NewDirSource(dir string) (*DirSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "profiles directory")
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	return &DirSource{Dir: dir}, nil
}

// Fetch loads <Dir>/<username>.{json,toml,yaml,yml}. JSON files pass
// through as Entry.Raw; other formats are re-encoded as JSON.
func (s *DirSource) Fetch(_ context.Context, username string) (*Entry, error) {
	if err := errors.ValidateUsername(username); err != nil {
		return nil, err
	}
	for _, ext := range dirExtensions {
		path := filepath.Join(s.Dir, username+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
		}
		doc, err := profile.Parse(data, ext)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse %s", filepath.Base(path))
		}
		if doc.Username == "" {
			doc.Username = username
		}
		if ext != ".json" {
			if data, err = json.Marshal(doc); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", filepath.Base(path))
			}
		}
		return &Entry{Raw: data, Document: doc}, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no profile for %s in %s", username, s.Dir)
}

func (s *DirSource) String() string { return "dir(" + s.Dir + ")" }
