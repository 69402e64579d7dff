package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/marsoolapp/marsool"
)

const sessionLocalsKey = "session"

// RequestAuthorizer resolves the bearer token to a session and stashes it
// in request locals for the handlers behind it.
func RequestAuthorizer(sessionStore marsool.SessionStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		auth := ctx.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return fiber.ErrUnauthorized
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			return fiber.NewError(fiber.ErrBadRequest.Code, "invalid auth type")
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		session, err := sessionStore.ByToken(token)
		if err != nil {
			if errors.Is(err, marsool.ErrSessionNotFound) {
				return fiber.ErrUnauthorized
			}
			return fmt.Errorf("session by token: %w", err)
		}

		requestLog(ctx).
			WithField("user_id", session.UserId).
			Infoln("Authorized access.")

		ctx.Locals(sessionLocalsKey, session)
		return nil
	}
}
