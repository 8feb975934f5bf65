package main

import (
	"wedding-rsvp/core/logger"
	"wedding-rsvp/core/server"

	_ "wedding-rsvp/docs" // Swagger docs
)

// @title Wedding RSVP API
// @version 1.0
// @description Backend for the wedding RSVP site: guest submissions, email confirmations and the admin dashboard.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
