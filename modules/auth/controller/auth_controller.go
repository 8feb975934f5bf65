package controller

import (
	"wedding-rsvp/core/controller"
	"wedding-rsvp/core/errors"
	"wedding-rsvp/modules/auth/dto"
	"wedding-rsvp/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(authService service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
	}
}

// Login authenticates the admin account.
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c echo.Context) error {
	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request data", nil)
	}

	loginResponse, err := ctrl.AuthService.Login(c.Request().Context(), requestData)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	return ctrl.SuccessResponse(c, loginResponse, "login success")
}
