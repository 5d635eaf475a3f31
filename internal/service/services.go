package service

import (
	"github.com/MKhiriev/go-user-admin/internal/auth"
	"github.com/MKhiriev/go-user-admin/internal/config"
	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/store"
)

type Services struct {
	AuthService      AuthService
	UserAdminService UserAdminService
}

func NewServices(storages *store.Storages, mailer Mailer, cfg config.Auth, logger *logger.Logger) (*Services, error) {
	tokens, err := auth.NewTokenService(cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration, cfg.ResetTokenDuration)
	if err != nil {
		return nil, err
	}

	hasher := auth.NewPasswordHasher()

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, hasher, tokens, mailer, cfg, logger),
		UserAdminService: NewUserAdminService(storages.UserRepository, logger),
	}, nil
}
