// Package uploads stores multipart file attachments on the local
// filesystem and hands back public URL references for embedding in
// documents.
package uploads

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"staynest-bend/models"
)

// Upload limits
const (
	MaxFiles    = 5
	MaxFileSize = 10 << 20 // 10MB
)

var allowedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".avi": true,
	".pdf": true, ".doc": true, ".docx": true,
}

// Dir returns the configured upload root
func Dir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// SaveAll persists every file under the given multipart field into
// subdir, returning attachment references. On any rejected or failed file
// the already-written files are removed and an error is returned.
func SaveAll(form *multipart.Form, field, subdir string) ([]models.Attachment, error) {
	if form == nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > MaxFiles {
		return nil, models.NewValidationError(
			fmt.Sprintf("A maximum of %d attachments is allowed", MaxFiles), field)
	}

	dir := filepath.Join(Dir(), subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var attachments []models.Attachment
	for _, fh := range files {
		att, err := saveOne(fh, dir, subdir, field)
		if err != nil {
			RemoveAll(attachments)
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}

func saveOne(fh *multipart.FileHeader, dir, subdir, field string) (models.Attachment, error) {
	var att models.Attachment

	if fh.Size > MaxFileSize {
		return att, models.NewValidationError("Attachment exceeds the 10MB size limit", fh.Filename)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if !allowedExts[ext] || !allowedContentType(contentType) {
		return att, models.NewValidationError(
			"Only images, videos, and documents are allowed", fh.Filename)
	}

	name := fmt.Sprintf("%s-%d%s", field, rand.Int63(), ext)
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return att, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return att, err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return att, err
	}

	att = models.Attachment{
		URL:          path.Join("/uploads", subdir, name),
		Kind:         KindFor(contentType),
		OriginalName: fh.Filename,
		Path:         dst,
	}
	return att, nil
}

func allowedContentType(ct string) bool {
	switch {
	case strings.HasPrefix(ct, "image/"), strings.HasPrefix(ct, "video/"):
		return true
	case ct == "application/pdf", ct == "application/msword":
		return true
	case strings.Contains(ct, "officedocument"), strings.Contains(ct, "document"):
		return true
	}
	return false
}

// KindFor maps a content type to an attachment kind
func KindFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.AttachmentImage
	case strings.HasPrefix(contentType, "video/"):
		return models.AttachmentVideo
	case contentType == "application/pdf",
		strings.Contains(contentType, "document"),
		strings.Contains(contentType, "msword"):
		return models.AttachmentDocument
	}
	return models.AttachmentOther
}

// RemoveAll deletes the stored files behind the given attachments,
// best effort.
func RemoveAll(attachments []models.Attachment) {
	for _, att := range attachments {
		RemovePaths([]string{att.Path})
	}
}

// RemovePaths deletes files by disk path, best effort
func RemovePaths(paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("upload cleanup: %v", err)
		}
	}
}
