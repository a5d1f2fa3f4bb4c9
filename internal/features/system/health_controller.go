package system

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{DB: db}
}

// Root godoc
// @Summary      Service banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (ctrl *HealthController) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Investment Portal API is running!"})
}

// Health godoc
// @Summary      Health check
// @Description  Reports service status and database connectivity
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/health [get]
func (ctrl *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	database := "Connected"
	if err := ctrl.DB.Ping(ctx); err != nil {
		database = "Disconnected"
	}
	return c.JSON(fiber.Map{
		"status":    "OK",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
