package controller

import (
	"net/http"
	"strconv"
	"time"

	"wedding-rsvp/core/config"
	"wedding-rsvp/core/constants"
	"wedding-rsvp/core/controller"
	"wedding-rsvp/core/errors"
	"wedding-rsvp/core/params"
	"wedding-rsvp/modules/admin/exporter"
	"wedding-rsvp/modules/rsvp/dto"
	"wedding-rsvp/modules/rsvp/service"

	"github.com/labstack/echo/v4"
)

type AdminController struct {
	controller.BaseController
	rsvpService *service.RSVPService
	exporter    *exporter.S3Exporter
}

func NewAdminController(rsvpService *service.RSVPService, exp *exporter.S3Exporter) *AdminController {
	return &AdminController{
		BaseController: controller.NewBaseController(),
		rsvpService:    rsvpService,
		exporter:       exp,
	}
}

// Dashboard lists RSVPs with aggregate statistics.
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} controller.SuccessResponse
// @Security BearerAuth
// @Router /admin/rsvps [get]
func (ctrl *AdminController) Dashboard(c echo.Context) error {
	queryParams := params.NewQueryParams(c)

	resp, err := ctrl.rsvpService.Dashboard(c.Request().Context(), queryParams)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "dashboard")
}

// Stats returns the aggregate attendance numbers.
// @Summary RSVP statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Security BearerAuth
// @Router /admin/rsvps/stats [get]
func (ctrl *AdminController) Stats(c echo.Context) error {
	resp, err := ctrl.rsvpService.Stats(c.Request().Context())
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "stats")
}

// UpdateRSVP applies a partial edit to one record.
// @Summary Update an RSVP
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "RSVP ID"
// @Param payload body dto.UpdateRSVPRequest true "Fields to change"
// @Success 200 {object} controller.SuccessResponse
// @Security BearerAuth
// @Router /admin/rsvps/{id} [put]
func (ctrl *AdminController) UpdateRSVP(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid rsvp id", nil)
	}

	requestData := new(dto.UpdateRSVPRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request data", nil)
	}

	resp, err := ctrl.rsvpService.Update(c.Request().Context(), id, requestData)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "rsvp updated")
}

// DeleteRSVP removes one record permanently.
// @Summary Delete an RSVP
// @Tags Admin
// @Produce json
// @Param id path int true "RSVP ID"
// @Success 200 {object} controller.SuccessResponse
// @Security BearerAuth
// @Router /admin/rsvps/{id} [delete]
func (ctrl *AdminController) DeleteRSVP(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid rsvp id", nil)
	}

	resp, err := ctrl.rsvpService.Delete(c.Request().Context(), id)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "rsvp deleted")
}

// DietaryPage lists every dietary restriction, cached.
// @Summary Dietary restrictions listing
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/rsvps/dietary [get]
func (ctrl *AdminController) DietaryPage(c echo.Context) error {
	return ctrl.categoryPage(c, constants.RedisKeyPageDietary)
}

// SongsPage lists every song request, cached.
// @Summary Song requests listing
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/rsvps/songs [get]
func (ctrl *AdminController) SongsPage(c echo.Context) error {
	return ctrl.categoryPage(c, constants.RedisKeyPageSongs)
}

func (ctrl *AdminController) categoryPage(c echo.Context, key string) error {
	rendered, err := ctrl.rsvpService.CategoryPage(c.Request().Context(), key)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return c.JSONBlob(http.StatusOK, rendered)
}

// Export uploads a CSV snapshot of the guest list to the configured bucket.
// @Summary Export RSVPs to S3
// @Tags Admin
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Security BearerAuth
// @Router /admin/export [post]
func (ctrl *AdminController) Export(c echo.Context) error {
	if ctrl.exporter == nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInternalServer,
			"export bucket not configured", nil))
	}

	ctx := c.Request().Context()
	rsvps, err := ctrl.rsvpService.GetAllRecords(ctx)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	body, err := exporter.RenderCSV(rsvps)
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInternalServer, "failed to render export", err))
	}

	couple := "wedding"
	if cfg, ok := config.GetSafe(); ok && cfg.CoupleNames != "" {
		couple = cfg.CoupleNames
	}
	key := exporter.ObjectKey(couple, time.Now())
	if err := ctrl.exporter.Upload(ctx, key, body); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInternalServer, "failed to upload export", err))
	}

	return ctrl.SuccessResponse(c, map[string]any{"key": key, "records": len(rsvps)}, "export uploaded")
}

// DownloadExport streams the CSV directly, for when no bucket is configured.
// @Summary Download RSVPs as CSV
// @Tags Admin
// @Produce text/csv
// @Success 200 {string} string
// @Security BearerAuth
// @Router /admin/export/download [get]
func (ctrl *AdminController) DownloadExport(c echo.Context) error {
	rsvps, err := ctrl.rsvpService.GetAllRecords(c.Request().Context())
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	body, err := exporter.RenderCSV(rsvps)
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInternalServer, "failed to render export", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="rsvps.csv"`)
	return c.Blob(http.StatusOK, "text/csv", body)
}
