package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"skill-match/internal/search"
)

var (
	ErrNotFound = errors.New("vectorizer artifact not found")
	ErrCorrupt  = errors.New("vectorizer artifact corrupt")
)

// Artifact is the persisted vectorizer together with the corpus it was fit on.
type Artifact struct {
	Fingerprint string                 `json:"fingerprint"`
	Documents   int                    `json:"documents"`
	FittedAt    time.Time              `json:"fitted_at"`
	State       search.VectorizerState `json:"state"`
}

// FileStore keeps a single artifact as a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the artifact and restores its vectorizer. A missing file yields
// ErrNotFound; anything unreadable or inconsistent yields ErrCorrupt.
func (s *FileStore) Load() (Artifact, *search.Vectorizer, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Artifact{}, nil, ErrNotFound
		}
		return Artifact{}, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var a Artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return Artifact{}, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if a.Fingerprint == "" {
		return Artifact{}, nil, fmt.Errorf("%w: missing fingerprint", ErrCorrupt)
	}

	v, err := search.NewVectorizerFromState(a.State)
	if err != nil {
		return Artifact{}, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return a, v, nil
}

// Save writes the artifact through a temp file and rename so readers never
// observe a partial file.
func (s *FileStore) Save(a Artifact) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".vectorizer-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
