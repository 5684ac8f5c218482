package handler

import (
	"net/http"

	"scholarship-portal/internal/usecase/scholarship"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const scholarshipImageField = "image"

type ScholarshipHandler struct {
	service *scholarship.Service
}

func NewScholarshipHandler(service *scholarship.Service) *ScholarshipHandler {
	return &ScholarshipHandler{service: service}
}

func (h *ScholarshipHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/scholarship")
	{
		group.GET("/", h.ListScholarships)
		group.GET("/:scholarship_id", h.GetScholarship)
	}
}

// RegisterSponsorRoutes expects router to be behind AuthMiddleware and a
// sponsor role check.
func (h *ScholarshipHandler) RegisterSponsorRoutes(router *gin.RouterGroup) {
	group := router.Group("/scholarship")
	{
		group.GET("/my-scholarships", h.ListMyScholarships)
		group.POST("/create", h.CreateScholarship)
		group.PUT("/:scholarship_id", h.UpdateScholarship)
		group.POST("/:scholarship_id/image", h.UploadImage)
	}
}

func (h *ScholarshipHandler) ListScholarships(c *gin.Context) {
	var query scholarship.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scholarships retrieved successfully", resp)
}

func (h *ScholarshipHandler) GetScholarship(c *gin.Context) {
	scholarshipID, ok := scholarshipIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), scholarshipID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scholarship retrieved successfully", resp)
}

func (h *ScholarshipHandler) ListMyScholarships(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var query scholarship.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), userID, &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scholarships retrieved successfully", resp)
}

func (h *ScholarshipHandler) CreateScholarship(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req scholarship.CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Scholarship created successfully", resp)
}

func (h *ScholarshipHandler) UpdateScholarship(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	scholarshipID, ok := scholarshipIDParam(c)
	if !ok {
		return
	}

	var req scholarship.UpdateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), userID, scholarshipID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scholarship updated successfully", resp)
}

func (h *ScholarshipHandler) UploadImage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	scholarshipID, ok := scholarshipIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(scholarshipImageField)
	if err != nil {
		respondWithError(c, appErrors.ErrMissingImage)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.UploadImage(c.Request.Context(), userID, scholarshipID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scholarship image uploaded successfully", resp)
}

func scholarshipIDParam(c *gin.Context) (uuid.UUID, bool) {
	scholarshipID, err := uuid.Parse(c.Param("scholarship_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid scholarship ID")
		return uuid.Nil, false
	}
	return scholarshipID, true
}
