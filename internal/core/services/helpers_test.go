package services

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"salary-bias-service/internal/adapters/secondary/filestore"
	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
)

// fileRenderer writes a placeholder file instead of a real image.
type fileRenderer struct {
	mu    sync.Mutex
	calls []string
}

func (r *fileRenderer) Render(male, female []domain.EmployeeRecord, destination string, _ domain.RenderOptions) error {
	if len(male) == 0 || len(female) == 0 {
		return domain.ErrMalformedInput
	}
	r.mu.Lock()
	r.calls = append(r.calls, destination)
	r.mu.Unlock()
	return os.WriteFile(destination, []byte("png"), 0o644)
}

func newTestStore(t *testing.T) (ports.ArtifactStore, string) {
	t.Helper()
	root := t.TempDir()
	store, err := filestore.NewStore(root)
	require.NoError(t, err)
	return store, root
}

func glob(t *testing.T, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	return matches
}
