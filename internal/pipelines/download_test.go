package pipelines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalModelPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("models", "KnightsAnalytics_distilbert-base-uncased-finetuned-sst-2-english"),
		LocalModelPath("models", "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"))
}

func TestEnsureModelUsesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	existing := LocalModelPath(dir, "org/model")
	require.NoError(t, os.MkdirAll(existing, os.ModePerm))

	path, err := EnsureModel(dir, "org/model")
	require.NoError(t, err)
	assert.Equal(t, existing, path)
}
