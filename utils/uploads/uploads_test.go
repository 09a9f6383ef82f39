package uploads

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"staynest-bend/models"

	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", models.AttachmentImage},
		{"image/png", models.AttachmentImage},
		{"video/mp4", models.AttachmentVideo},
		{"application/pdf", models.AttachmentDocument},
		{"application/msword", models.AttachmentDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", models.AttachmentDocument},
		{"application/octet-stream", models.AttachmentOther},
		{"", models.AttachmentOther},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, KindFor(tc.contentType), "content type %q", tc.contentType)
	}
}

// buildForm assembles a parsed multipart form with one file part per entry
func buildForm(t *testing.T, field string, files map[string]string) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, contentType := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("file content"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(MaxFileSize)
	require.NoError(t, err)
	return form
}

func withUploadDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := os.Getenv("UPLOAD_DIR")
	require.NoError(t, os.Setenv("UPLOAD_DIR", dir))
	t.Cleanup(func() { os.Setenv("UPLOAD_DIR", prev) })
	return dir
}

func TestSaveAll(t *testing.T) {
	t.Run("nil form yields no attachments", func(t *testing.T) {
		attachments, err := SaveAll(nil, "attachments", "support")
		require.NoError(t, err)
		require.Empty(t, attachments)
	})

	t.Run("stores files and returns references", func(t *testing.T) {
		dir := withUploadDir(t)
		form := buildForm(t, "attachments", map[string]string{
			"leak.jpg":   "image/jpeg",
			"report.pdf": "application/pdf",
		})

		attachments, err := SaveAll(form, "attachments", "support")
		require.NoError(t, err)
		require.Len(t, attachments, 2)

		kinds := map[string]string{}
		for _, att := range attachments {
			require.True(t, strings.HasPrefix(att.Path, dir))
			require.Contains(t, att.URL, "/uploads/support/")
			_, statErr := os.Stat(att.Path)
			require.NoError(t, statErr)
			kinds[att.OriginalName] = att.Kind
		}
		require.Equal(t, models.AttachmentImage, kinds["leak.jpg"])
		require.Equal(t, models.AttachmentDocument, kinds["report.pdf"])
	})

	t.Run("rejects a disallowed extension", func(t *testing.T) {
		withUploadDir(t)
		form := buildForm(t, "attachments", map[string]string{
			"payload.exe": "application/octet-stream",
		})

		_, err := SaveAll(form, "attachments", "support")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)
	})

	t.Run("rejects a mismatched content type", func(t *testing.T) {
		withUploadDir(t)
		form := buildForm(t, "attachments", map[string]string{
			"leak.jpg": "application/octet-stream",
		})

		_, err := SaveAll(form, "attachments", "support")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)
	})

	t.Run("rejects more than the file limit", func(t *testing.T) {
		dir := withUploadDir(t)
		files := map[string]string{}
		for _, name := range []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"} {
			files[name] = "image/jpeg"
		}

		_, err := SaveAll(buildForm(t, "attachments", files), "attachments", "support")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)

		// nothing should have been written
		entries, readErr := os.ReadDir(filepath.Join(dir, "support"))
		if readErr == nil {
			require.Empty(t, entries)
		}
	})
}

func TestRemovePaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gone.jpg")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	RemovePaths([]string{file, "", filepath.Join(dir, "never-existed.jpg")})

	_, err := os.Stat(file)
	require.True(t, os.IsNotExist(err))
}
