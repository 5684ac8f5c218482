// Package onboarding walks a fresh account through role selection and the
// first profile setup.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainProfile "scholarship-portal/internal/domain/profile"
	domainUser "scholarship-portal/internal/domain/user"
	"scholarship-portal/internal/logger"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service struct {
	userRepo    domainUser.Repository
	profileRepo domainProfile.Repository
}

func NewService(userRepo domainUser.Repository, profileRepo domainProfile.Repository) *Service {
	return &Service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// SelectRole assigns student or sponsor once; the choice cannot be changed later.
func (s *Service) SelectRole(ctx context.Context, userID uuid.UUID, req *SelectRoleRequest) (*StatusResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(domainUser.ErrInvalidUserRole.Error(), domainUser.ErrInvalidUserRole)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.RoleLocked() {
		logger.Warn("Role selection attempted twice",
			zap.String("user_id", user.ID.String()),
			zap.String("current_role", string(user.Role)),
			logger.Event("role_selection_rejected"),
		)
		return nil, appErrors.Validation(
			fmt.Sprintf("You have already selected your role as %s.", user.Role),
			domainUser.ErrRoleAlreadySelected,
		)
	}

	user.Role = domainUser.Role(req.Role)
	user.HasSelectedRole = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Role selected",
		zap.String("user_id", user.ID.String()),
		zap.String("role", req.Role),
		logger.Event("role_selected"),
	)

	return &StatusResponse{
		ID:              user.ID,
		Email:           user.Email,
		Role:            string(user.Role),
		HasSelectedRole: user.HasSelectedRole,
	}, nil
}

func (s *Service) ProfileStatus(ctx context.Context, userID uuid.UUID) (*StatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.profileCompleted(ctx, user)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		ID:               user.ID,
		Email:            user.Email,
		Role:             string(user.Role),
		HasSelectedRole:  user.HasSelectedRole,
		ProfileCompleted: completed,
	}, nil
}

// SetupProfile creates or replaces the profile matching the selected role and
// marks it completed.
func (s *Service) SetupProfile(ctx context.Context, userID uuid.UUID, req *SetupProfileRequest) (*StatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case !user.HasSelectedRole:
		return nil, appErrors.Validation("Please select a role before setting up your profile", domainUser.ErrRoleNotSelected)
	case user.Role == domainUser.RoleStudent:
		err = s.setupStudent(ctx, user.ID, req)
	case user.Role == domainUser.RoleSponsor:
		err = s.setupSponsor(ctx, user.ID, req)
	default:
		return nil, appErrors.Forbidden("Profile setup is only available to students and sponsors")
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Profile setup completed",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		logger.Event("profile_setup_completed"),
	)

	return &StatusResponse{
		ID:               user.ID,
		Email:            user.Email,
		Role:             string(user.Role),
		HasSelectedRole:  true,
		ProfileCompleted: true,
	}, nil
}

func (s *Service) setupStudent(ctx context.Context, userID uuid.UUID, req *SetupProfileRequest) error {
	input := studentSetup{
		FullName:      utils.SanitizeString(req.FullName),
		Gender:        utils.SanitizeString(req.Gender),
		DateOfBirth:   req.DateOfBirth,
		ContactNumber: utils.SanitizePhone(req.ContactNumber),
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return appErrors.Validation("Invalid student profile", err)
	}

	dob, err := time.Parse(dateLayout, input.DateOfBirth)
	if err != nil {
		return appErrors.Validation("date_of_birth must be formatted as YYYY-MM-DD", err)
	}

	student, err := s.profileRepo.GetStudentByUserID(ctx, userID)
	if errors.Is(err, domainProfile.ErrStudentNotFound) {
		student = &domainProfile.Student{UserID: userID}
	} else if err != nil {
		return err
	}

	student.FullName = input.FullName
	student.Gender = input.Gender
	student.DateOfBirth = &dob
	student.ContactNumber = input.ContactNumber
	student.HasCompletedProfile = true

	return s.profileRepo.SaveStudent(ctx, student)
}

func (s *Service) setupSponsor(ctx context.Context, userID uuid.UUID, req *SetupProfileRequest) error {
	input := sponsorSetup{
		OrganizationName: utils.SanitizeString(req.OrganizationName),
		OrganizationType: utils.SanitizeString(req.OrganizationType),
		OfficialEmail:    utils.SanitizeEmail(req.OfficialEmail),
		ContactNumber:    utils.SanitizePhone(req.ContactNumber),
	}
	if err := utils.ValidateStruct(&input); err != nil {
		return appErrors.Validation("Invalid sponsor profile", err)
	}

	sponsor, err := s.profileRepo.GetSponsorByUserID(ctx, userID)
	if errors.Is(err, domainProfile.ErrSponsorNotFound) {
		sponsor = &domainProfile.Sponsor{UserID: userID}
	} else if err != nil {
		return err
	}

	sponsor.OrganizationName = input.OrganizationName
	sponsor.OrganizationType = input.OrganizationType
	sponsor.OfficialEmail = input.OfficialEmail
	sponsor.ContactNumber = input.ContactNumber
	sponsor.HasCompletedProfile = true

	return s.profileRepo.SaveSponsor(ctx, sponsor)
}

func (s *Service) profileCompleted(ctx context.Context, user *domainUser.User) (bool, error) {
	switch user.Role {
	case domainUser.RoleStudent:
		student, err := s.profileRepo.GetStudentByUserID(ctx, user.ID)
		if errors.Is(err, domainProfile.ErrStudentNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return student.HasCompletedProfile, nil
	case domainUser.RoleSponsor:
		sponsor, err := s.profileRepo.GetSponsorByUserID(ctx, user.ID)
		if errors.Is(err, domainProfile.ErrSponsorNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return sponsor.HasCompletedProfile, nil
	}
	return false, nil
}
