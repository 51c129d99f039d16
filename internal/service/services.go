package service

import (
	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/avoronin/go-blog/internal/mail"
	"github.com/avoronin/go-blog/internal/store"
)

type Services struct {
	AuthService  AuthService
	PostService  PostService
	MediaService MediaService
}

func NewServices(storages store.Storages, mailer mail.Mailer, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:  NewAuthService(storages.UserRepository, mailer, cfg.App, logger),
		PostService:  NewPostService(storages.PostRepository, storages.UserRepository, cfg.App, logger),
		MediaService: NewMediaService(cfg.Storage.Files, logger),
	}
}
