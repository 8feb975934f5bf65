package router

import (
	"wedding-rsvp/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	Controller *controller.AuthController
}

func NewAuthRouter(ctrl *controller.AuthController) *AuthRouter {
	return &AuthRouter{Controller: ctrl}
}

func (r *AuthRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/auth/login", r.Controller.Login)
}
