package router

import (
	"wedding-rsvp/modules/rsvp/controller"

	"github.com/labstack/echo/v4"
)

type RSVPRouter struct {
	Controller *controller.RSVPController
}

func NewRSVPRouter(ctrl *controller.RSVPController) *RSVPRouter {
	return &RSVPRouter{Controller: ctrl}
}

func (r *RSVPRouter) Setup(e *echo.Echo) {
	// Public pages
	e.GET("/rsvp", r.Controller.FormPage)
	e.POST("/rsvp", r.Controller.SubmitForm)
	e.GET("/rsvp/thanks", r.Controller.ThanksPage)

	// JSON API
	v1 := e.Group("/api/v1")
	v1.POST("/rsvp", r.Controller.Submit)
	v1.POST("/validate-email", r.Controller.ValidateEmail)
}
