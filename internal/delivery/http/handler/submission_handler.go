package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	submissionDomain "submission-portal/internal/domain/submission"
	"submission-portal/internal/logger"
	"submission-portal/internal/middleware"
	"submission-portal/internal/usecase/submission"
	appErrors "submission-portal/pkg/errors"
	"submission-portal/pkg/filestore"
	"submission-portal/pkg/utils"
)

type SubmissionHandler struct {
	service *submission.Service
}

func NewSubmissionHandler(service *submission.Service) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

func (h *SubmissionHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	group := router.Group("/submissions")
	{
		group.GET("/all", h.ListAll)

		group.POST("", auth, h.Create)
		group.GET("/my-list", auth, h.List)
		group.GET("/:id/download", auth, h.Download)
		group.PUT("/resubmit/:id", auth, h.Resubmit)
		group.PUT("/:id", auth, h.Update)
		group.DELETE("/:id", auth, h.Delete)
	}
}

func (h *SubmissionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req submission.CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, closeFile := formUpload(c)
	if closeFile != nil {
		defer closeFile()
	}

	resp, err := h.service.Create(c.Request.Context(), userID, &req, file)
	if err != nil {
		respondWithSubmissionError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Submission created successfully", resp)
}

func (h *SubmissionHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	var req submission.UpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, closeFile := formUpload(c)
	if closeFile != nil {
		defer closeFile()
	}

	resp, err := h.service.Update(c.Request.Context(), userID, id, &req, file)
	if err != nil {
		respondWithSubmissionError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submission updated successfully", resp)
}

func (h *SubmissionHandler) Resubmit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	resp, err := h.service.Resubmit(c.Request.Context(), userID, id)
	if err != nil {
		respondWithSubmissionError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submission submitted successfully", resp)
}

func (h *SubmissionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	archived, err := h.service.Delete(c.Request.Context(), userID, id)
	if err != nil {
		respondWithSubmissionError(c, err)
		return
	}

	if archived {
		utils.SuccessResponse(c, http.StatusOK, "Submission archived successfully", nil)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Submission deleted permanently", nil)
}

func (h *SubmissionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	submissions, err := h.service.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondWithSubmissionError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submissions retrieved successfully", submissions)
}

func (h *SubmissionHandler) ListAll(c *gin.Context) {
	listings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondWithSubmissionError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submissions retrieved successfully", listings)
}

func (h *SubmissionHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	result, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		respondWithSubmissionError(c, err)
		return
	}
	defer result.Reader.Close()

	disposition := "attachment"
	if result.Inline {
		disposition = "inline"
	}

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", disposition, result.OriginalName),
	}

	c.DataFromReader(http.StatusOK, result.Size, result.ContentType, result.Reader, extraHeaders)
}

// formUpload extracts the multipart "file" field. Absence is not an
// error here; the service decides whether a file is required.
func formUpload(c *gin.Context) (*submission.UploadedFile, func()) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, nil
	}

	upload := &submission.UploadedFile{
		Reader:      f,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
	return upload, func() { f.Close() }
}

func respondWithSubmissionError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, submissionDomain.ErrSubmissionNotFound),
		errors.Is(err, submissionDomain.ErrNoSubmissions),
		errors.Is(err, submissionDomain.ErrFileMissing):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, submissionDomain.ErrNotOwner):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, submissionDomain.ErrFileRequired),
		errors.Is(err, filestore.ErrFileTypeNotAllowed):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
