package auth

import (
	"wedding-rsvp/core/cache"
	"wedding-rsvp/modules/auth/controller"
	"wedding-rsvp/modules/auth/router"
	"wedding-rsvp/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, cache cache.ICache) {
	svc := service.NewAuthService(cache)
	ctrl := controller.NewAuthController(svc)
	router.NewAuthRouter(ctrl).Setup(e)
}
