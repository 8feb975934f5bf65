package admin

import (
	"wedding-rsvp/core/config"
	"wedding-rsvp/core/middleware"
	"wedding-rsvp/modules/admin/controller"
	"wedding-rsvp/modules/admin/exporter"
	"wedding-rsvp/modules/admin/router"
	"wedding-rsvp/modules/rsvp/service"

	"github.com/labstack/echo/v4"
)

// Init wires the admin surface on top of the RSVP service. The S3 exporter is
// optional and only built when a bucket is configured.
func Init(e *echo.Echo, rsvpService *service.RSVPService, mw *middleware.Middleware) {
	var exp *exporter.S3Exporter
	if cfg, ok := config.GetSafe(); ok && cfg.S3Bucket != "" {
		exp = exporter.NewS3Exporter(exporter.S3ExporterConfig{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	ctrl := controller.NewAdminController(rsvpService, exp)
	router.NewAdminRouter(ctrl).Setup(e, mw)
}
