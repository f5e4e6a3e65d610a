package screen

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal"
	screenmodel "github.com/fbarbosa/hr-management/internal/core/datamodel/screen"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListScreens(activeOnly bool) ([]*screenmodel.Screen, error) {
	screens, err := s.repo.List(activeOnly)
	if err != nil {
		return nil, internal.NewInternalError("failed to list screens", err)
	}
	return screens, nil
}

func (s *Service) GetScreen(id int64) (*screenmodel.Screen, error) {
	sc, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrScreenNotFound
		}
		return nil, internal.NewInternalError("failed to load screen", err)
	}
	return sc, nil
}

// GrantAccess upserts: a repeated grant for the same pair replaces the
// stored permissions instead of adding a duplicate row.
func (s *Service) GrantAccess(screenID, userID int64, permissions *string, grantedBy *int64) error {
	if _, err := s.GetScreen(screenID); err != nil {
		return err
	}

	userExists, err := s.repo.UserExists(userID)
	if err != nil {
		return internal.NewInternalError("failed to check user", err)
	}
	if !userExists {
		return internal.ErrUserNotFound
	}

	perms := "{}"
	if permissions != nil {
		perms = *permissions
	}

	existing, err := s.repo.GetGrant(userID, screenID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.NewInternalError("failed to check screen grant", err)
	}
	if existing != nil {
		existing.Permissions = perms
		if err := s.repo.UpdateGrant(existing); err != nil {
			s.logger.Error("failed to update screen grant", "screen_id", screenID, "user_id", userID, "error", err)
			return internal.NewInternalError("failed to update screen grant", err)
		}
		return nil
	}

	grant := &usermodel.ScreenGrant{
		UserID:      userID,
		ScreenID:    screenID,
		Permissions: perms,
		GrantedBy:   grantedBy,
	}
	if err := s.repo.CreateGrant(grant); err != nil {
		s.logger.Error("failed to create screen grant", "screen_id", screenID, "user_id", userID, "error", err)
		return internal.NewInternalError("failed to create screen grant", err)
	}

	s.logger.Info("screen access granted", "screen_id", screenID, "user_id", userID)
	return nil
}

func (s *Service) RevokeAccess(screenID, userID int64) error {
	if _, err := s.GetScreen(screenID); err != nil {
		return err
	}

	if err := s.repo.DeleteGrant(userID, screenID); err != nil {
		s.logger.Error("failed to revoke screen grant", "screen_id", screenID, "user_id", userID, "error", err)
		return internal.NewInternalError("failed to revoke screen grant", err)
	}

	s.logger.Info("screen access revoked", "screen_id", screenID, "user_id", userID)
	return nil
}

func (s *Service) ListGrants(screenID int64) ([]GrantInfo, error) {
	if _, err := s.GetScreen(screenID); err != nil {
		return nil, err
	}

	grants, err := s.repo.ListGrants(screenID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list screen grants", err)
	}
	return grants, nil
}
