package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gradhunt/gradboard-backend/internal/config"
)

// Sentinel errors for logo uploads and signed retrieval.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrInvalidSignature    = errors.New("invalid or expired asset signature")
	ErrInvalidAssetPath    = errors.New("invalid asset path")
)

// Allowed logo MIME types.
var allowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// logoPrefix is the fixed logical prefix all logo objects live under.
const logoPrefix = "logos"

// StorageService stores logo uploads in a private directory and mints
// HMAC-signed, time-boxed retrieval URLs for them. The directory is never
// served statically; reads go through VerifySignedPath.
type StorageService struct {
	cfg *config.Config
	now func() time.Time
}

// NewStorageService creates a new StorageService.
func NewStorageService(cfg *config.Config) *StorageService {
	return &StorageService{cfg: cfg, now: time.Now}
}

// SaveLogo writes an uploaded logo under the private upload directory and
// returns its durable storage path (e.g. "logos/1700000000000_acme.png").
// That path, not a signed URL, is what belongs on the owning listing.
func (s *StorageService) SaveLogo(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if _, ok := allowedMIMETypes[contentType]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	if header.Size > s.cfg.MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}

	// Timestamp prefix avoids collisions between same-named uploads.
	name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), sanitizeFilename(header.Filename))
	storagePath := logoPrefix + "/" + name

	dir := filepath.Join(s.cfg.UploadDir, logoPrefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return storagePath, nil
}

// SignedURL mints a retrieval URL for a stored path, valid for ttl.
func (s *StorageService) SignedURL(path string, ttl time.Duration) (string, error) {
	if err := validateAssetPath(path); err != nil {
		return "", err
	}
	exp := s.now().Add(ttl).Unix()
	sig := s.sign(path, exp)
	return fmt.Sprintf("%s/api/v1/assets/%s?exp=%d&sig=%s",
		s.cfg.ServerBaseURL, path, exp, url.QueryEscape(sig)), nil
}

// VerifySignedPath checks the expiry and signature of a retrieval request
// and returns the filesystem location of the asset. All failure modes
// collapse into ErrInvalidSignature.
func (s *StorageService) VerifySignedPath(path string, exp int64, sig string) (string, error) {
	if err := validateAssetPath(path); err != nil {
		return "", err
	}
	if s.now().Unix() >= exp {
		return "", ErrInvalidSignature
	}
	expected := s.sign(path, exp)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return "", ErrInvalidSignature
	}
	return filepath.Join(s.cfg.UploadDir, filepath.FromSlash(path)), nil
}

// sign computes the base64url HMAC-SHA256 over path and expiry with the
// shared secret.
func (s *StorageService) sign(path string, exp int64) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.JWTSecret))
	mac.Write([]byte(path + ":" + strconv.FormatInt(exp, 10)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// sanitizeFilename restricts a client-supplied filename to a safe character
// set, mirroring what the upload form promises.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	safe := unsafeFilenameChars.ReplaceAllString(base, "_")
	if safe == "" || safe == "." || safe == ".." {
		safe = "upload"
	}
	return safe
}

// validateAssetPath rejects anything outside the logo prefix or attempting
// directory traversal.
func validateAssetPath(path string) error {
	if !strings.HasPrefix(path, logoPrefix+"/") {
		return ErrInvalidAssetPath
	}
	if strings.Contains(path, "..") || strings.Contains(path, "\\") {
		return ErrInvalidAssetPath
	}
	return nil
}
