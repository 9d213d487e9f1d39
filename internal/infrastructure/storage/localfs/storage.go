package localfs

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/domain"
)

// Storage keeps uploaded audit images on the local filesystem and hands
// out time-limited signed download URLs. Content types live in a sidecar
// next to each object so Open can restore them without guessing.
type Storage struct {
	basePath string
	signer   signer
	baseURL  string
}

const contentTypeSuffix = ".ctype"

func New(basePath, signingSecret, publicBaseURL string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/storage"
	}
	if signingSecret == "" {
		return nil, fmt.Errorf("localfs: signing secret is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{
		basePath: basePath,
		signer:   signer{secret: []byte(signingSecret)},
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *Storage) Upload(_ context.Context, path string, data []byte, contentType string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	if contentType != "" {
		if err := os.WriteFile(full+contentTypeSuffix, []byte(contentType), 0o644); err != nil {
			return fmt.Errorf("write content type: %w", err)
		}
	}
	return nil
}

func (s *Storage) Open(_ context.Context, path string) ([]byte, string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", domain.WrapError(domain.ErrNotFound, "open object", err)
		}
		return nil, "", fmt.Errorf("open object: %w", err)
	}
	contentType := ""
	if meta, err := os.ReadFile(full + contentTypeSuffix); err == nil {
		contentType = strings.TrimSpace(string(meta))
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(full))
	}
	return data, contentType, nil
}

// SignedURL builds a download link served by the API's /v1/files route.
// The signature covers the object path and the expiry, so neither can be
// altered without invalidating the link.
func (s *Storage) SignedURL(path string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("localfs: empty object path")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	expires := time.Now().Add(ttl).Unix()
	sig := s.signer.sign(path, expires)
	return fmt.Sprintf("%s/v1/files/%s?exp=%d&sig=%s", s.baseURL, path, expires, sig), nil
}

func (s *Storage) VerifySignature(path string, expires int64, signature string) bool {
	return s.signer.verify(path, expires, signature)
}

func (s *Storage) resolve(path string) (string, error) {
	clean := filepath.Clean(strings.TrimSpace(path))
	if clean == "" || clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("localfs: invalid object path %q", path)
	}
	return filepath.Join(s.basePath, clean), nil
}
