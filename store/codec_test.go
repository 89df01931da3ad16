package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephgoksu/taskvoice/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]string{
		"":      FormatJSON,
		"JSON":  FormatJSON,
		"yaml":  FormatYAML,
		"yml":   FormatYAML,
		" toml": FormatTOML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestFileTaskStore_AlternateFormats(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), "tasks."+format)

			s, err := NewFileTaskStore(filePath, WithFormat(format), WithClock(steppingClock(900)))
			require.NoError(t, err)
			_, err = s.Add("buy milk", nil)
			require.NoError(t, err)
			_, err = s.Add("walk dog", strPtr("2025-09-20"))
			require.NoError(t, err)
			_, err = s.Add("feed cat", nil)
			require.NoError(t, err)
			done, err := s.Complete("milk")
			require.NoError(t, err)
			require.NotNil(t, done)
			require.NoError(t, s.Close())

			reopened, err := NewFileTaskStore(filePath, WithFormat(format))
			require.NoError(t, err)
			defer func() { _ = reopened.Close() }()

			open, err := reopened.ListOpen()
			require.NoError(t, err)
			require.Len(t, open, 2)
			assert.Equal(t, "walk dog", open[0].Text)
			require.NotNil(t, open[0].Due)
			assert.Equal(t, "2025-09-20", *open[0].Due)
			assert.Equal(t, "feed cat", open[1].Text)
			assert.Nil(t, open[1].Due)
		})
	}
}

func TestEncodeDocument_EmptyCollection(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatTOML} {
		data, err := encodeDocument(format, models.TaskList{})
		require.NoError(t, err, format)
		assert.True(t, strings.Contains(string(data), "tasks"), "%s output: %s", format, data)

		list, err := decodeDocument(format, data)
		require.NoError(t, err, format)
		assert.NotNil(t, list.Tasks)
		assert.Empty(t, list.Tasks)
	}
}

func TestDecodeDocument_YAMLShapeErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/tasks.yaml", []byte("tasks:\n  - id: one\n    text: x\n    done: false\n"), 0o644))

	_, err := NewFileTaskStore("/tasks.yaml", WithFs(fsys), WithFormat(FormatYAML))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestNewFileTaskStore_DefaultPathFollowsFormat(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := NewFileTaskStore("", WithFs(fsys), WithFormat(FormatTOML))
	require.NoError(t, err)
	assert.Equal(t, "tasks.toml", s.Path())
	assert.Equal(t, FormatTOML, s.Format())

	exists, err := afero.Exists(fsys, "tasks.toml")
	require.NoError(t, err)
	assert.True(t, exists)
}
