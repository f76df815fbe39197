package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	dir := t.TempDir()

	t.Run("text file with CRLF endings", func(t *testing.T) {
		path := filepath.Join(dir, "constitution.txt")
		require.NoError(t, os.WriteFile(path, []byte("Article I\r\nName\r\n"), 0o600))

		text, err := ReadText(path)
		require.NoError(t, err)
		assert.Equal(t, "Article I\nName\n", text)
	})

	t.Run("markdown extension is case insensitive", func(t *testing.T) {
		path := filepath.Join(dir, "departments.MD")
		require.NoError(t, os.WriteFile(path, []byte("Faculty: Law"), 0o600))

		text, err := ReadText(path)
		require.NoError(t, err)
		assert.Equal(t, "Faculty: Law", text)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ReadText(filepath.Join(dir, "constitution.docx"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported document type")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadText(filepath.Join(dir, "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid pdf propagates the library error", func(t *testing.T) {
		path := filepath.Join(dir, "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o600))

		_, err := ReadText(path)
		assert.Error(t, err)
	})
}
