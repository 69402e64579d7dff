package rest

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/marsoolapp/marsool"
)

type SessionController struct {
	Store marsool.SessionStore
}

func (c *SessionController) InstallTo(requestAuthorizer fiber.Handler, app *fiber.App) {
	app.Get("/session", combineHandlers(requestAuthorizer, c.serveCurrentSession))
	app.Delete("/session", combineHandlers(requestAuthorizer, c.serveLogout))
}

func (c *SessionController) serveCurrentSession(ctx *fiber.Ctx) error {
	session, ok := ctx.Locals(sessionLocalsKey).(marsool.UserSession)
	if !ok {
		return fiber.ErrUnauthorized
	}

	// session meta without the authorization token
	type SessionMeta struct {
		Id             string `json:"id"`
		UserId         string `json:"userId"`
		LastAccessedAt int64  `json:"lastAccessedAt"`
		ExpiresAt      int64  `json:"expiresAt"`
	}
	return ctx.JSON(SessionMeta{
		Id:             session.Id,
		UserId:         session.UserId,
		LastAccessedAt: session.LastAccessedAt.Unix(),
		ExpiresAt:      session.ExpiresAt.Unix(),
	})
}

func (c *SessionController) serveLogout(ctx *fiber.Ctx) error {
	session, ok := ctx.Locals(sessionLocalsKey).(marsool.UserSession)
	if !ok {
		return fiber.ErrUnauthorized
	}
	if err := c.Store.InvalidateByToken(session.Token); err != nil {
		if errors.Is(err, marsool.ErrSessionNotFound) {
			return fiber.ErrForbidden
		}
		return fmt.Errorf("session invalidate: %w", err)
	}
	return nil
}
