// Package scholarship publishes and manages the scholarships offered by sponsors.
package scholarship

import (
	"context"
	"fmt"
	"io"
	"time"

	domainProfile "scholarship-portal/internal/domain/profile"
	domainScholarship "scholarship-portal/internal/domain/scholarship"
	"scholarship-portal/internal/domain/storage"
	domainUser "scholarship-portal/internal/domain/user"
	"scholarship-portal/internal/logger"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	dateLayout      = "2006-01-02"
)

type Service struct {
	scholarshipRepo domainScholarship.Repository
	userRepo        domainUser.Repository
	profileRepo     domainProfile.Repository
	blobs           storage.BlobStore
	maxImageBytes   int64
}

func NewService(
	scholarshipRepo domainScholarship.Repository,
	userRepo domainUser.Repository,
	profileRepo domainProfile.Repository,
	blobs storage.BlobStore,
	maxImageBytes int64,
) *Service {
	return &Service{
		scholarshipRepo: scholarshipRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		blobs:           blobs,
		maxImageBytes:   maxImageBytes,
	}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateScholarshipRequest) (*ScholarshipResponse, error) {
	sponsor, err := s.sponsorFor(ctx, userID, "Only sponsors can create scholarships")
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid scholarship data", err)
	}

	deadline, err := parseDeadline(req.ApplicationDeadline)
	if err != nil {
		return nil, err
	}

	scholarship := &domainScholarship.Scholarship{
		SponsorID:           sponsor.ID,
		Status:              domainScholarship.StatusActive,
		Type:                utils.SanitizeOptional(req.Type),
		Purpose:             utils.SanitizeOptional(req.Purpose),
		Title:               utils.SanitizeString(req.Title),
		Description:         sanitizeOptionalText(req.Description),
		TotalAmount:         *req.TotalAmount,
		TotalSlot:           *req.TotalSlot,
		ApplicationDeadline: deadline,
		Criteria:            sanitizeList(req.Criteria),
		RequiredDocuments:   sanitizeList(req.RequiredDocuments),
	}

	if err := s.scholarshipRepo.Create(ctx, scholarship); err != nil {
		return nil, err
	}

	logger.Info("Scholarship created",
		zap.String("scholarship_id", scholarship.ID.String()),
		zap.String("sponsor_id", sponsor.ID.String()),
		logger.Event("scholarship_created"),
	)

	return s.Get(ctx, scholarship.ID)
}

func (s *Service) Get(ctx context.Context, scholarshipID uuid.UUID) (*ScholarshipResponse, error) {
	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, scholarship), nil
}

// List returns the public listing, newest first.
func (s *Service) List(ctx context.Context, query *ListQuery) (*ListResponse, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, filter)
}

// ListMine returns the scholarships owned by the signed-in sponsor.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, query *ListQuery) (*ListResponse, error) {
	sponsor, err := s.sponsorFor(ctx, userID, "Only sponsors can view their scholarships")
	if err != nil {
		return nil, err
	}

	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}
	filter.SponsorID = &sponsor.ID

	return s.list(ctx, filter)
}

func (s *Service) Update(ctx context.Context, userID, scholarshipID uuid.UUID, req *UpdateScholarshipRequest) (*ScholarshipResponse, error) {
	scholarship, err := s.owned(ctx, userID, scholarshipID, "Only sponsors can update scholarships")
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid scholarship data", err)
	}

	if req.Title != nil {
		scholarship.Title = utils.SanitizeString(*req.Title)
	}
	if req.Type != nil {
		scholarship.Type = utils.SanitizeOptional(req.Type)
	}
	if req.Purpose != nil {
		scholarship.Purpose = utils.SanitizeOptional(req.Purpose)
	}
	if req.Description != nil {
		scholarship.Description = sanitizeOptionalText(req.Description)
	}
	if req.Status != nil {
		scholarship.Status = domainScholarship.Status(*req.Status)
	}
	if req.TotalAmount != nil {
		scholarship.TotalAmount = *req.TotalAmount
	}
	if req.TotalSlot != nil {
		scholarship.TotalSlot = *req.TotalSlot
	}
	if req.ApplicationDeadline != nil {
		deadline, err := parseDeadline(req.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		scholarship.ApplicationDeadline = deadline
	}
	if req.Criteria != nil {
		scholarship.Criteria = sanitizeList(*req.Criteria)
	}
	if req.RequiredDocuments != nil {
		scholarship.RequiredDocuments = sanitizeList(*req.RequiredDocuments)
	}

	if err := s.scholarshipRepo.Update(ctx, scholarship); err != nil {
		return nil, err
	}

	logger.Info("Scholarship updated",
		zap.String("scholarship_id", scholarship.ID.String()),
		logger.Event("scholarship_updated"),
	)

	return s.Get(ctx, scholarship.ID)
}

// UploadImage replaces the cover image of an owned scholarship.
func (s *Service) UploadImage(ctx context.Context, userID, scholarshipID uuid.UUID, r io.Reader) (*ImageResponse, error) {
	scholarship, err := s.owned(ctx, userID, scholarshipID, "Only sponsors can upload scholarship images")
	if err != nil {
		return nil, err
	}

	img, err := utils.ReadImage(r, s.maxImageBytes)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("scholarships/scholarship-%s-%s.%s", scholarship.ID, uuid.New(), img.Extension)
	if err := s.blobs.Upload(ctx, key, img.ContentType, img.Reader(), img.Size()); err != nil {
		return nil, err
	}

	previous := scholarship.ImageKey
	scholarship.ImageKey = &key
	if err := s.scholarshipRepo.Update(ctx, scholarship); err != nil {
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

	logger.Info("Scholarship image uploaded",
		zap.String("scholarship_id", scholarship.ID.String()),
		zap.String("key", key),
		logger.Event("scholarship_image_uploaded"),
	)

	return &ImageResponse{ImageURL: url}, nil
}

func (s *Service) list(ctx context.Context, filter *domainScholarship.Filter) (*ListResponse, error) {
	scholarships, total, err := s.scholarshipRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ScholarshipResponse, 0, len(scholarships))
	for _, scholarship := range scholarships {
		responses = append(responses, s.toResponse(ctx, scholarship))
	}

	return &ListResponse{
		Scholarships: responses,
		Total:        total,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}, nil
}

// sponsorFor resolves the sponsor profile of userID. Accounts without the
// sponsor role are rejected with denied as the message.
func (s *Service) sponsorFor(ctx context.Context, userID uuid.UUID, denied string) (*domainProfile.Sponsor, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domainUser.RoleSponsor {
		return nil, appErrors.Forbidden(denied)
	}
	return s.profileRepo.GetSponsorByUserID(ctx, user.ID)
}

func (s *Service) owned(ctx context.Context, userID, scholarshipID uuid.UUID, denied string) (*domainScholarship.Scholarship, error) {
	sponsor, err := s.sponsorFor(ctx, userID, denied)
	if err != nil {
		return nil, err
	}

	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}

	if scholarship.SponsorID != sponsor.ID {
		logger.Warn("Scholarship ownership check failed",
			zap.String("scholarship_id", scholarshipID.String()),
			zap.String("sponsor_id", sponsor.ID.String()),
			logger.Event("scholarship_access_denied"),
		)
		return nil, appErrors.Forbidden("You can only manage your own scholarships")
	}

	return scholarship, nil
}

func (s *Service) toResponse(ctx context.Context, scholarship *domainScholarship.Scholarship) *ScholarshipResponse {
	var imageURL *string
	if scholarship.ImageKey != nil {
		url, err := s.blobs.URL(ctx, *scholarship.ImageKey)
		if err != nil {
			logger.Warn("Failed to sign scholarship image URL",
				zap.String("key", *scholarship.ImageKey),
				zap.Error(err),
			)
		} else {
			imageURL = &url
		}
	}
	return toScholarshipResponse(scholarship, imageURL)
}

func (s *Service) deleteBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		logger.Warn("Failed to delete image blob",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func buildFilter(query *ListQuery) (*domainScholarship.Filter, error) {
	if query == nil {
		query = &ListQuery{}
	}
	if err := utils.ValidateStruct(query); err != nil {
		return nil, appErrors.Validation("Invalid query parameters", err)
	}

	filter := &domainScholarship.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if query.Status != "" {
		status := domainScholarship.Status(query.Status)
		filter.Status = &status
	}

	return filter, nil
}

// parseDeadline accepts RFC 3339 timestamps and plain dates.
func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, appErrors.Validation("application_deadline must be a date (YYYY-MM-DD) or RFC 3339 timestamp", err)
	}
	return &t, nil
}

func sanitizeOptionalText(input *string) *string {
	if input == nil {
		return nil
	}
	sanitized := utils.SanitizeText(*input)
	return &sanitized
}

func sanitizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, utils.SanitizeString(item))
	}
	return out
}
