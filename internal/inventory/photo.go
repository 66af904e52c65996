package inventory

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/polica/internal/model"
)

// PublicPathPrefix is the URL prefix photos are served under by the
// host's static file handler.
const PublicPathPrefix = "/local/ha_inventory/"

// thumbDirName is the subdirectory of the photo directory thumbnails
// are written to.
const thumbDirName = "thumbs"

// PhotoOptions carries the optional metadata for a photo ingested from
// raw bytes.
type PhotoOptions struct {
	// Filename is the caller-suggested filename. When it carries an
	// extension, that extension wins over the MIME-derived one.
	Filename string

	// ContentType is the caller-declared MIME type. Defaults to
	// image/jpeg. It is recorded as declared, not verified against the
	// content.
	ContentType string
}

// FileInfo references a locally readable file to ingest as a photo.
type FileInfo struct {
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// preferredExts pins the extension for common image types so filename
// generation does not depend on the platform MIME database.
var preferredExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AddItemPhotoFromBytes writes the photo to the photo directory and
// appends an attachment record to the item. An existing file with the
// same name is overwritten.
func (s *Store) AddItemPhotoFromBytes(ctx context.Context, itemID string, content []byte, opts PhotoOptions) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}

	if err := os.MkdirAll(s.photoDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo directory: %w", err)
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	ext := extensionForType(contentType)
	if opts.Filename != "" && strings.Contains(opts.Filename, ".") {
		if e := filepath.Ext(opts.Filename); e != "" && e != "." {
			ext = e
		}
	}

	filename := opts.Filename
	if filename == "" {
		filename = itemID + "-" + randomHex() + ext
	}
	filename = sanitizeFilename(filename)

	if err := os.WriteFile(filepath.Join(s.photoDir, filename), content, 0o644); err != nil {
		return nil, fmt.Errorf("writing photo: %w", err)
	}

	now := time.Now().UTC()
	attachment := model.Attachment{
		ID:          uuid.NewString(),
		Category:    model.AttachmentCategoryPhoto,
		Name:        filename,
		ContentType: contentType,
		Path:        PublicPathPrefix + filename,
		UploadedAt:  now,
	}

	prevAttachments := item.Attachments
	prevUpdated := item.UpdatedAt
	item.Attachments = append(item.Attachments, attachment)
	item.UpdatedAt = now

	if err := s.save(ctx); err != nil {
		// The photo file stays behind, same as after an item delete.
		item.Attachments = prevAttachments
		item.UpdatedAt = prevUpdated
		return nil, err
	}

	s.writeThumbnail(filename, content)
	return item, nil
}

// AddItemPhotoFromURL fetches the photo over HTTP and hands it to the
// bytes path. The response's declared Content-Type is trusted as the
// photo's MIME type.
func (s *Store) AddItemPhotoFromURL(ctx context.Context, itemID, imageURL, suggestedFilename string) (*model.Item, error) {
	if s.Item(itemID) == nil {
		return nil, ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return s.AddItemPhotoFromBytes(ctx, itemID, content, PhotoOptions{
		Filename:    suggestedFilename,
		ContentType: contentType,
	})
}

// AddItemPhotoFromFile reads a locally uploaded file and hands it to
// the bytes path.
func (s *Store) AddItemPhotoFromFile(ctx context.Context, itemID string, info FileInfo) (*model.Item, error) {
	if s.Item(itemID) == nil {
		return nil, ErrNotFound
	}

	if info.Path == "" {
		return nil, errors.New("photo file info has no path")
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return nil, fmt.Errorf("reading photo source: %w", err)
	}

	return s.AddItemPhotoFromBytes(ctx, itemID, content, PhotoOptions{
		Filename:    info.Filename,
		ContentType: info.ContentType,
	})
}

// writeThumbnail produces a thumbnail rendition next to the stored
// photo. Best-effort: any failure is logged and otherwise ignored.
// Callers must hold s.mu.
func (s *Store) writeThumbnail(filename string, content []byte) {
	if s.thumbnail == nil {
		return
	}

	thumb, err := s.thumbnail(content)
	if err != nil {
		slog.Debug("skipping thumbnail", "file", filename, "error", err)
		return
	}

	dir := filepath.Join(s.photoDir, thumbDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("creating thumbnail directory", "error", err)
		return
	}

	name := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, name), thumb, 0o644); err != nil {
		slog.Warn("writing thumbnail", "file", name, "error", err)
	}
}

// extensionForType derives a file extension from a MIME type, ignoring
// any parameters after ";". Unrecognized types fall back to .jpg.
func extensionForType(contentType string) string {
	base := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if ext, ok := preferredExts[base]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(base); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".jpg"
}

// sanitizeFilename replaces path separators so a crafted filename
// cannot escape the photo directory.
func sanitizeFilename(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}

// randomHex returns a random 32-character hex string for generated
// photo filenames.
func randomHex() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
