package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"meetbook/internal/config"
	"meetbook/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	slotHandler *handler.SlotHandler,
	meetingHandler *handler.MeetingHandler,
	aiHandler *handler.AIHandler,
	notificationHandler *handler.NotificationHandler,
	historyHandler *handler.HistoryHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/reg", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/seed/demo", seedHandler.SeedDemoData)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, _ := token.Claims.(jwt.MapClaims)
		return c.JSON(http.StatusOK, echo.Map{"token_claims": claims})
	})

	// User routes
	secured.GET("/users", userHandler.ListUsers)
	secured.GET("/users/:id", userHandler.GetUser)

	// Slot routes
	secured.POST("/slot/create", slotHandler.CreateSlot)
	secured.PUT("/slot/update", slotHandler.UpdateSlot)
	secured.GET("/slot/allslot", slotHandler.GetAllSlots)
	secured.GET("/slot/single/:id", slotHandler.GetSlot)
	secured.GET("/slot/user/:id", slotHandler.GetSlotsByUser)
	secured.GET("/slot/date/:date/user/:userId", slotHandler.GetSlotsForDates)
	secured.PUT("/slot/delete", slotHandler.DeleteSlot)

	// Meeting routes
	secured.POST("/meet/create", meetingHandler.CreateMeeting)
	secured.GET("/meet/allmeet", meetingHandler.GetAllMeetings)
	secured.GET("/meet/single/:id", meetingHandler.GetMeeting)
	secured.GET("/meet/user/:hostId", meetingHandler.GetMeetingsByHost)
	secured.GET("/meet/slot/:slotId", meetingHandler.GetMeetingsBySlot)
	secured.GET("/meet/date/:date/user/:userId", meetingHandler.GetMeetingsForDates)
	secured.PUT("/meet/status/:status/id/:meetingId", meetingHandler.ChangeStatus)
	secured.DELETE("/meet/del/:id", meetingHandler.DeleteMeeting)

	// AI ranking routes
	secured.POST("/ai/body/:slotId", aiHandler.RankMeetingsForSlot)
	secured.POST("/ai/guest", aiHandler.RankSlotsForGuest)

	// Notification routes
	secured.GET("/notifications/user/:id", notificationHandler.ListByUser)

	// History routes
	secured.GET("/history", historyHandler.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
