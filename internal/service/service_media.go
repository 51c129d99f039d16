package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/utils"
	"github.com/disintegration/imaging"
)

// thumbnailSize is the bounding box profile pictures are scaled into.
const thumbnailSize = 125

// mediaService stores uploaded profile pictures as thumbnails in the static
// profile-pics directory.
type mediaService struct {
	dir    string
	uuid   *utils.UUIDGenerator
	logger *logger.Logger
}

// NewMediaService constructs a MediaService writing into the configured
// profile-pics directory. The directory is created on first save if missing.
func NewMediaService(cfg config.Files, logger *logger.Logger) MediaService {
	return &mediaService{
		dir:    cfg.ProfilePicsDir,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// allowedImageExts are the upload extensions accepted for profile pictures.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// SaveProfilePicture decodes the uploaded image, scales it down to fit the
// thumbnail bounding box (small images are never upscaled), and writes it
// under a fresh random name so concurrent uploads cannot collide.
//
// Returns ErrInvalidMedia when the extension is not an accepted image type
// or the payload does not decode as an image; in that case nothing is
// written to disk.
func (m *mediaService) SaveProfilePicture(ctx context.Context, src io.Reader, originalName string) (string, error) {
	log := logger.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: extension %q is not allowed", ErrInvalidMedia, ext)
	}

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		log.Err(err).Str("file", originalName).Msg("uploaded file does not decode as an image")
		return "", fmt.Errorf("%w: %w", ErrInvalidMedia, err)
	}

	thumbnail := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating profile pics directory: %w", err)
	}

	fileName := m.uuid.GenerateFileName(originalName)
	path := filepath.Join(m.dir, fileName)

	if err := imaging.Save(thumbnail, path); err != nil {
		// do not leave a half-written file behind
		_ = os.Remove(path)
		log.Err(err).Str("path", path).Msg("saving thumbnail failed")
		return "", fmt.Errorf("saving thumbnail failed: %w", err)
	}

	return fileName, nil
}
