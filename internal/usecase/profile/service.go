package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	domainProfile "scholarship-portal/internal/domain/profile"
	"scholarship-portal/internal/domain/storage"
	domainUser "scholarship-portal/internal/domain/user"
	"scholarship-portal/internal/logger"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Service manages the signed-in user's profile and profile picture
type Service struct {
	userRepo      domainUser.Repository
	profileRepo   domainProfile.Repository
	blobs         storage.BlobStore
	maxImageBytes int64
}

func NewService(
	userRepo domainUser.Repository,
	profileRepo domainProfile.Repository,
	blobs storage.BlobStore,
	maxImageBytes int64,
) *Service {
	return &Service{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		blobs:         blobs,
		maxImageBytes: maxImageBytes,
	}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{
		User:              toUserSummary(user),
		ProfilePictureURL: s.pictureURL(ctx, user.ProfileImageKey),
	}

	switch user.Role {
	case domainUser.RoleStudent:
		student, err := s.profileRepo.GetStudentByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, domainProfile.ErrStudentNotFound) {
			return nil, err
		}
		resp.Student = toStudentResponse(student)
	case domainUser.RoleSponsor:
		sponsor, err := s.profileRepo.GetSponsorByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, domainProfile.ErrSponsorNotFound) {
			return nil, err
		}
		resp.Sponsor = toSponsorResponse(sponsor)
	}

	return resp, nil
}

// Update patches the profile of the selected role. The profile must have been
// set up during onboarding.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid input", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case domainUser.RoleStudent:
		err = s.updateStudent(ctx, user.ID, req)
	case domainUser.RoleSponsor:
		err = s.updateSponsor(ctx, user.ID, req)
	default:
		return nil, appErrors.Validation("Please select a role before updating your profile", domainUser.ErrRoleNotSelected)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("user_id", user.ID.String()),
		logger.Event("profile_updated"),
	)

	return s.Get(ctx, userID)
}

func (s *Service) updateStudent(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) error {
	student, err := s.profileRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if req.FullName != nil {
		student.FullName = utils.SanitizeString(*req.FullName)
	}
	if req.Gender != nil {
		student.Gender = utils.SanitizeString(*req.Gender)
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return appErrors.Validation("date_of_birth must be formatted as YYYY-MM-DD", err)
		}
		student.DateOfBirth = &dob
	}
	if req.ContactNumber != nil {
		student.ContactNumber = utils.SanitizePhone(*req.ContactNumber)
	}

	return s.profileRepo.SaveStudent(ctx, student)
}

func (s *Service) updateSponsor(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) error {
	sponsor, err := s.profileRepo.GetSponsorByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if req.OrganizationName != nil {
		sponsor.OrganizationName = utils.SanitizeString(*req.OrganizationName)
	}
	if req.OrganizationType != nil {
		sponsor.OrganizationType = utils.SanitizeString(*req.OrganizationType)
	}
	if req.OfficialEmail != nil {
		sponsor.OfficialEmail = utils.SanitizeEmail(*req.OfficialEmail)
	}
	if req.ContactNumber != nil {
		sponsor.ContactNumber = utils.SanitizePhone(*req.ContactNumber)
	}

	return s.profileRepo.SaveSponsor(ctx, sponsor)
}

// UploadPicture stores a new profile picture and removes the previous one.
func (s *Service) UploadPicture(ctx context.Context, userID uuid.UUID, r io.Reader) (*PictureResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	img, err := utils.ReadImage(r, s.maxImageBytes)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("profiles/profile-%s-%s.%s", user.ID, uuid.New(), img.Extension)
	if err := s.blobs.Upload(ctx, key, img.ContentType, img.Reader(), img.Size()); err != nil {
		return nil, err
	}

	previous := user.ProfileImageKey
	user.ProfileImageKey = &key
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.deleteBlob(ctx, key)
		return nil, err
	}
	if previous != nil {
		s.deleteBlob(ctx, *previous)
	}

	url, err := s.blobs.URL(ctx, key)
	if err != nil {
		return nil, err
	}

	logger.Info("Profile picture uploaded",
		zap.String("user_id", user.ID.String()),
		zap.String("key", key),
		logger.Event("profile_picture_uploaded"),
	)

	return &PictureResponse{ProfilePictureURL: url}, nil
}

func (s *Service) DeletePicture(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ProfileImageKey == nil {
		return appErrors.NotFound("No profile picture to delete")
	}

	if err := s.blobs.Delete(ctx, *user.ProfileImageKey); err != nil {
		return err
	}

	user.ProfileImageKey = nil
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	logger.Info("Profile picture deleted",
		zap.String("user_id", user.ID.String()),
		logger.Event("profile_picture_deleted"),
	)

	return nil
}

func (s *Service) pictureURL(ctx context.Context, key *string) *string {
	if key == nil {
		return nil
	}
	url, err := s.blobs.URL(ctx, *key)
	if err != nil {
		logger.Warn("Failed to sign profile picture URL",
			zap.String("key", *key),
			zap.Error(err),
		)
		return nil
	}
	return &url
}

// deleteBlob removes a blob best-effort; a leftover object is only wasted space.
func (s *Service) deleteBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		logger.Warn("Failed to delete image blob",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
