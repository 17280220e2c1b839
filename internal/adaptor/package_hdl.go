package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"travel-portal/internal/dto/request"
	"travel-portal/internal/usecase"
	"travel-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PackageHandler struct {
	service usecase.PackageService
	log     *zap.Logger
}

func NewPackageHandler(service usecase.PackageService, log *zap.Logger) *PackageHandler {
	return &PackageHandler{
		service: service,
		log:     log.With(zap.String("handler", "package")),
	}
}

// ListPackages handles GET /api/packages (public)
func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	search := &request.PackageSearchRequest{
		Keyword:  query.Get("search"),
		Category: query.Get("category"),
		MinPrice: utils.ParseFloat(query.Get("min_price")),
		MaxPrice: utils.ParseFloat(query.Get("max_price")),
		Duration: query.Get("duration"),
	}

	// Validate filter values
	if validationErrors := utils.ValidateStruct(search); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Invalid filter parameters", validationErrors)
		return
	}

	page := request.PaginationFromQuery(query, 9)

	packages, err := h.service.ListPackages(r.Context(), search, page)
	if err != nil {
		h.handleServiceError(w, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, "Packages retrieved successfully", packages)
}

// GetPackage handles GET /api/packages/{id} (public)
func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	pkg, err := h.service.GetPackage(r.Context(), packageID)
	if err != nil {
		h.handleServiceError(w, err, "get package")
		return
	}

	utils.ResponseSuccess(w, "Package retrieved successfully", pkg)
}

// ==================== ADMIN HANDLERS ====================

// CreatePackage handles POST /api/admin/packages (admin only)
func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create package")
		return
	}

	utils.ResponseCreated(w, "Package created successfully", pkg)
}

// UpdatePackage handles PUT /api/admin/packages/{id} (admin only)
func (h *PackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	var req request.PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	pkg, err := h.service.UpdatePackage(r.Context(), packageID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update package")
		return
	}

	utils.ResponseSuccess(w, "Package updated successfully", pkg)
}

// DeletePackage handles DELETE /api/admin/packages/{id} (admin only)
func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")
	if packageID == "" {
		utils.ResponseBadRequest(w, "Package ID is required", nil)
		return
	}

	result, err := h.service.DeletePackage(r.Context(), packageID)
	if err != nil {
		h.handleServiceError(w, err, "delete package")
		return
	}

	utils.ResponseSuccess(w, "Package deleted successfully", result)
}

// handleServiceError handles errors for package operations
func (h *PackageHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrPackageNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Package not found")

	case errors.Is(err, usecase.ErrPackageHasBookings):
		h.log.Warn(operation+" blocked by confirmed bookings", zap.Error(err))
		utils.ResponseConflict(w, "Package has confirmed bookings and cannot be deleted")

	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
