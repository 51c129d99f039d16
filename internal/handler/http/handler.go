package http

import (
	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/service"
	"github.com/avoronin/go-blog/internal/session"
)

type Handler struct {
	services *service.Services
	sessions *session.Manager

	templates templateSet

	// maxPreview limits the content preview length on listing pages.
	maxPreview int

	// profilePicsDir is the on-disk directory uploaded profile pictures are
	// served from.
	profilePicsDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions *session.Manager, cfg config.StructuredConfig, logger *logger.Logger) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		sessions:       sessions,
		templates:      templates,
		maxPreview:     cfg.App.MaxPreviewChars,
		profilePicsDir: cfg.Storage.Files.ProfilePicsDir,
		logger:         logger,
	}, nil
}
