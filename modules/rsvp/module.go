package rsvp

import (
	"wedding-rsvp/core/cache"
	"wedding-rsvp/core/database"
	"wedding-rsvp/core/metrics"
	notifService "wedding-rsvp/modules/notification/service"
	"wedding-rsvp/modules/rsvp/controller"
	"wedding-rsvp/modules/rsvp/repository"
	"wedding-rsvp/modules/rsvp/router"
	"wedding-rsvp/modules/rsvp/service"

	"github.com/labstack/echo/v4"
)

// Init wires the public RSVP module and returns its service for the admin
// module, which operates on the same records.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	cache cache.ICache,
	confirmations notifService.ConfirmationServiceInterface,
	observer metrics.Observer,
) *service.RSVPService {
	repo := repository.NewRSVPRepository(db)
	svc := service.NewRSVPService(repo, confirmations, cache, observer)
	ctrl := controller.NewRSVPController(svc)
	router.NewRSVPRouter(ctrl).Setup(e)
	return svc
}
