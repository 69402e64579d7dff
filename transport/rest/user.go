package rest

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/marsoolapp/marsool"
)

type UserController struct {
	Store marsool.UserStore
}

func (c *UserController) InstallTo(requestAuthorizer fiber.Handler, app *fiber.App) {
	app.Get("/users/:user_id", c.serveProfile)
	app.Put("/users/:user_id", combineHandlers(requestAuthorizer, c.serveUpdateProfile))
}

// UserResponse is a superset of the editable fields; clients ignore the
// extra keys.
type UserResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CreatedAt   int64  `json:"createdAt"`
}

func userResponse(user marsool.User) UserResponse {
	return UserResponse{
		Username:    user.Profile.Username,
		DisplayName: user.Profile.DisplayName,
		Phone:       user.Profile.Phone,
		Email:       user.Profile.Email,
		Address:     user.Profile.Address,
		CreatedAt:   user.CreatedAt.Unix(),
	}
}

func (c *UserController) serveProfile(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")
	if userId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no user id")
	}

	user, err := c.Store.ById(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, marsool.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "profile not found")
		} else {
			return fmt.Errorf("get user by id: %w", err)
		}
	}
	return ctx.JSON(userResponse(user))
}

func (c *UserController) serveUpdateProfile(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")
	if userId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no user id")
	}
	session, ok := ctx.Locals(sessionLocalsKey).(marsool.UserSession)
	if !ok {
		return fiber.ErrUnauthorized
	}
	if session.UserId != userId {
		return fiber.ErrForbidden
	}

	var fields marsool.ProfileFields
	if err := ctx.BodyParser(&fields); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := c.Store.SaveProfile(ctx.Context(), userId, fields); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	user, err := c.Store.ById(ctx.Context(), userId)
	if err != nil {
		return fmt.Errorf("get user by id: %w", err)
	}
	return ctx.JSON(userResponse(user))
}
