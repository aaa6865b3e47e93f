package service

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradhunt/gradboard-backend/internal/config"
)

// memFile adapts a bytes.Reader to the multipart.File interface.
type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

func uploadParts(name, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(content)),
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
	return memFile{bytes.NewReader(content)}, header
}

func newTestStorageService(t *testing.T) *StorageService {
	t.Helper()
	s := NewStorageService(&config.Config{
		JWTSecret:      "test-secret",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 5 * 1024 * 1024,
		ServerBaseURL:  "http://localhost:8080",
	})
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestSaveLogo(t *testing.T) {
	s := newTestStorageService(t)

	file, header := uploadParts("Acme Logo (final).png", "image/png", []byte("png-bytes"))
	path, err := s.SaveLogo(file, header)
	require.NoError(t, err)

	assert.Equal(t, "logos/1700000000000_Acme_Logo__final_.png", path)

	data, err := os.ReadFile(filepath.Join(s.cfg.UploadDir, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveLogoRejectsUnsupportedType(t *testing.T) {
	s := newTestStorageService(t)

	file, header := uploadParts("resume.pdf", "application/pdf", []byte("%PDF"))
	_, err := s.SaveLogo(file, header)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestSaveLogoRejectsOversize(t *testing.T) {
	s := newTestStorageService(t)

	file, header := uploadParts("big.png", "image/png", []byte("x"))
	header.Size = 5*1024*1024 + 1
	_, err := s.SaveLogo(file, header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "logo.png", sanitizeFilename("logo.png"))
	assert.Equal(t, "my_logo_v2_.png", sanitizeFilename("my logo v2!.png"))
	assert.Equal(t, "passwd", sanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "upload", sanitizeFilename(""))
	assert.Equal(t, "upload", sanitizeFilename(".."))
}

func TestSignedURLRoundtrip(t *testing.T) {
	s := newTestStorageService(t)

	signed, err := s.SignedURL("logos/1_acme.png", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signed, "http://localhost:8080/api/v1/assets/logos/1_acme.png?"))

	u, err := url.Parse(signed)
	require.NoError(t, err)
	exp, err := strconv.ParseInt(u.Query().Get("exp"), 10, 64)
	require.NoError(t, err)
	sig := u.Query().Get("sig")

	fsPath, err := s.VerifySignedPath("logos/1_acme.png", exp, sig)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.cfg.UploadDir, "logos", "1_acme.png"), fsPath)
}

func TestVerifySignedPathExpired(t *testing.T) {
	s := newTestStorageService(t)

	signed, err := s.SignedURL("logos/1_acme.png", time.Hour)
	require.NoError(t, err)
	u, _ := url.Parse(signed)
	exp, _ := strconv.ParseInt(u.Query().Get("exp"), 10, 64)

	// Advance past expiry.
	s.now = func() time.Time { return time.Unix(exp, 0) }
	_, err = s.VerifySignedPath("logos/1_acme.png", exp, u.Query().Get("sig"))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignedPathTampered(t *testing.T) {
	s := newTestStorageService(t)

	signed, err := s.SignedURL("logos/1_acme.png", time.Hour)
	require.NoError(t, err)
	u, _ := url.Parse(signed)
	exp, _ := strconv.ParseInt(u.Query().Get("exp"), 10, 64)
	sig := u.Query().Get("sig")

	// Wrong signature.
	_, err = s.VerifySignedPath("logos/1_acme.png", exp, "forged-signature")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Signature from one path does not transfer to another.
	_, err = s.VerifySignedPath("logos/2_other.png", exp, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Extending expiry invalidates the signature.
	_, err = s.VerifySignedPath("logos/1_acme.png", exp+3600, sig)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifySignedPathRejectsTraversal(t *testing.T) {
	s := newTestStorageService(t)

	for _, path := range []string{
		"logos/../secrets.env",
		"../logos/1.png",
		"other/1.png",
		`logos\..\..\x`,
	} {
		_, err := s.VerifySignedPath(path, time.Now().Add(time.Hour).Unix(), "sig")
		assert.ErrorIs(t, err, ErrInvalidAssetPath, "path %q should be rejected", path)
	}
}
