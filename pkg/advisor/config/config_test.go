package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/advisor/pkg/advisor/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "advisor.yaml", `
db_path: /var/lib/advisor/records.db
stoplist: stopwords.yaml
knowledge:
  chunk_size: 400
  top_k: 5
llm:
  base_url: https://llm.example/v1
  chat_model: advisor-chat
  embed_model: advisor-embed
  api_key: sk-test
student:
  name: Pat Quinn
  id: 80
  major: ACCT
  gpa: 3.4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/advisor/records.db", cfg.DBPath)
	assert.Equal(t, "stopwords.yaml", cfg.StoplistPath)
	assert.Equal(t, 400, cfg.Knowledge.ChunkSize)
	assert.Equal(t, 5, cfg.Knowledge.TopK)
	assert.Equal(t, "https://llm.example/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "advisor-chat", cfg.LLM.ChatModel)
	assert.Equal(t, "Pat Quinn", cfg.Student.Name)
	assert.Equal(t, 80, cfg.Student.ID)
	assert.InDelta(t, 3.4, cfg.Student.GPA, 1e-9)
}

func TestLoadMissingDBPath(t *testing.T) {
	path := writeFile(t, "advisor.yaml", "stoplist: stopwords.yaml\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeFile(t, "advisor.yaml", "db_path: [unclosed\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stopwords.yaml", "terms:\n  - the\n  - a\n  - an\n")

	sl, err := LoadStoplist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "a", "an"}, sl.Terms)
}
