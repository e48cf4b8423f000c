package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round trip", func(t *testing.T) {
		fs, err := NewFileStore(t.TempDir(), nil)
		require.NoError(t, err)

		data := []byte("ADOPTION AGREEMENT\n")
		require.NoError(t, fs.Save(ctx, "agreements/abc.txt", data))

		loaded, err := fs.Load(ctx, "agreements/abc.txt")
		require.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run("save overwrites", func(t *testing.T) {
		fs, err := NewFileStore(t.TempDir(), nil)
		require.NoError(t, err)

		require.NoError(t, fs.Save(ctx, "doc.txt", []byte("first")))
		require.NoError(t, fs.Save(ctx, "doc.txt", []byte("second")))

		loaded, err := fs.Load(ctx, "doc.txt")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), loaded)
	})

	t.Run("missing document", func(t *testing.T) {
		fs, err := NewFileStore(t.TempDir(), nil)
		require.NoError(t, err)

		_, err = fs.Load(ctx, "agreements/nope.txt")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("refs cannot escape the root", func(t *testing.T) {
		fs, err := NewFileStore(t.TempDir(), nil)
		require.NoError(t, err)

		assert.Error(t, fs.Save(ctx, "../outside.txt", []byte("x")))
		_, err = fs.Load(ctx, "/etc/passwd")
		assert.Error(t, err)
	})
}
