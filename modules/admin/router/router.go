package router

import (
	"wedding-rsvp/core/middleware"
	"wedding-rsvp/modules/admin/controller"

	"github.com/labstack/echo/v4"
)

type AdminRouter struct {
	Controller *controller.AdminController
}

func NewAdminRouter(ctrl *controller.AdminController) *AdminRouter {
	return &AdminRouter{Controller: ctrl}
}

func (r *AdminRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	admin := e.Group("/api/v1/admin", mw.AuthMiddleware())

	admin.GET("/rsvps", r.Controller.Dashboard)
	admin.GET("/rsvps/stats", r.Controller.Stats)
	admin.GET("/rsvps/dietary", r.Controller.DietaryPage)
	admin.GET("/rsvps/songs", r.Controller.SongsPage)
	admin.PUT("/rsvps/:id", r.Controller.UpdateRSVP)
	admin.DELETE("/rsvps/:id", r.Controller.DeleteRSVP)

	admin.POST("/export", r.Controller.Export)
	admin.GET("/export/download", r.Controller.DownloadExport)
}
