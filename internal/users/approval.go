package users

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"esitemart.com/app/internal/mailer"
)

// ApprovalService runs the client-account workflow: list pending
// wholesale registrations, approve or reject them, notify by email.
type ApprovalService struct {
	db     *gorm.DB
	mail   mailer.Service
	from   string
	logger *slog.Logger
}

func NewApprovalService(db *gorm.DB, mail mailer.Service, from string) *ApprovalService {
	return &ApprovalService{db: db, mail: mail, from: from, logger: slog.Default()}
}

func (s *ApprovalService) SetLogger(l *slog.Logger) { s.logger = l }

func (s *ApprovalService) ListUsers(ctx context.Context) ([]User, error) {
	var list []User
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&list).Error
	return list, err
}

func (s *ApprovalService) ListPendingClients(ctx context.Context) ([]User, error) {
	var list []User
	err := s.db.WithContext(ctx).
		Where("role = ? AND approved = ?", RoleClient, false).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (s *ApprovalService) Approve(ctx context.Context, userID string) error {
	var u User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Model(&User{}).
			Where("id = ?", userID).
			Updates(map[string]any{"approved": true, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return err
	}

	s.notify(ctx, u, "Your account has been approved",
		"Hello "+u.Name+",\n\nYour client account is approved. You can sign in now.\n")
	return nil
}

func (s *ApprovalService) Reject(ctx context.Context, userID string) error {
	var u User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&User{}, "id = ?", userID).Error; err != nil {
		return err
	}

	s.notify(ctx, u, "Your registration was not approved",
		"Hello "+u.Name+",\n\nWe could not approve your client registration.\n")
	return nil
}

// notify is fire-and-forget; a mail failure never fails the workflow.
func (s *ApprovalService) notify(ctx context.Context, u User, subject, body string) {
	if s.mail == nil || u.Email == "" {
		return
	}
	err := s.mail.Send(ctx, mailer.Email{
		From:     s.from,
		To:       []string{u.Email},
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "approval mail failed", "user_id", u.ID, "err", err)
	}
}
