package service

import (
	"context"
	"fmt"

	"boutiqueCMS/internal/models"
	"boutiqueCMS/internal/repository"

	"github.com/rs/zerolog/log"
)

type ContactService interface {
	Submit(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]*models.ContactMessage, error)
	Get(ctx context.Context, messageID string) (*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, messageID string, update models.ContactStatusUpdate) (*models.ContactMessage, error)
	Delete(ctx context.Context, messageID string) error
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

// Submit stores a new message; workflow statuses always start at their initial values.
func (s *contactService) Submit(ctx context.Context, msg *models.ContactMessage) error {
	msg.Status = models.MessageNew
	msg.ProcessingStatus = models.ProcessingPending
	msg.PaymentStatus = models.PaymentUnpaid

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return err
	}

	log.Ctx(ctx).Info().Str("message_id", msg.ID).Msg("новое сообщение с формы контакта")
	return nil
}

func (s *contactService) List(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}

func (s *contactService) Get(ctx context.Context, messageID string) (*models.ContactMessage, error) {
	return s.contactRepo.GetByID(ctx, messageID)
}

func (s *contactService) UpdateStatus(ctx context.Context, messageID string, update models.ContactStatusUpdate) (*models.ContactMessage, error) {
	if update.Empty() {
		return nil, ErrEmptyUpdate
	}

	// check enums
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidStatus, *update.Status)
	}
	if update.ProcessingStatus != nil && !update.ProcessingStatus.Valid() {
		return nil, fmt.Errorf("%w: processingStatus %q", ErrInvalidStatus, *update.ProcessingStatus)
	}
	if update.PaymentStatus != nil && !update.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: paymentStatus %q", ErrInvalidStatus, *update.PaymentStatus)
	}

	return s.contactRepo.UpdateStatus(ctx, messageID, update)
}

func (s *contactService) Delete(ctx context.Context, messageID string) error {
	return s.contactRepo.Delete(ctx, messageID)
}
