package service

import (
	"context"
	"fmt"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"
)

// SecretSealer encrypts values at rest.
type SecretSealer interface {
	Seal(plaintext string) (string, error)
}

type EmailConfigService interface {
	Get(ctx context.Context, userID string) (*models.EmailConfig, error)
	Save(ctx context.Context, cfg *models.EmailConfig) error
	Delete(ctx context.Context, userID string) error
}

type emailConfigService struct {
	emailConfigRepo repository.EmailConfigRepository
	sealer          SecretSealer
}

func NewEmailConfigService(emailConfigRepo repository.EmailConfigRepository, sealer SecretSealer) EmailConfigService {
	return &emailConfigService{emailConfigRepo: emailConfigRepo, sealer: sealer}
}

func (s *emailConfigService) Get(ctx context.Context, userID string) (*models.EmailConfig, error) {
	cfg, err := s.emailConfigRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cfg.Password = ""
	return cfg, nil
}

func (s *emailConfigService) Save(ctx context.Context, cfg *models.EmailConfig) error {
	plain := cfg.Password

	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return fmt.Errorf("ошибка шифрования пароля: %w", err)
	}

	cfg.Password = sealed
	err = s.emailConfigRepo.Upsert(ctx, cfg)
	cfg.Password = ""

	return err
}

func (s *emailConfigService) Delete(ctx context.Context, userID string) error {
	return s.emailConfigRepo.DeleteByUserID(ctx, userID)
}
