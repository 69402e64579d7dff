package rest

import (
	"io/ioutil"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/marsoolapp/marsool"
	"github.com/marsoolapp/marsool/mock"
	"github.com/stretchr/testify/assert"
)

func TestSessionControllerCurrentSession(t *testing.T) {
	assert := assert.New(t)

	session := marsool.UserSession{
		Id:             "s1",
		UserId:         "42",
		Token:          "valid_token",
		LastAccessedAt: time.Unix(1700000000, 0),
		ExpiresAt:      time.Unix(1702592000, 0),
	}
	store := mock.SessionStore{
		ByTokenFn: func(token string) (marsool.UserSession, error) {
			if token != session.Token {
				return marsool.UserSession{}, marsool.ErrSessionNotFound
			}
			return session, nil
		},
	}
	controller := SessionController{Store: store}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(RequestAuthorizer(store), app)

	req := httptest.NewRequest("GET", "/session", nil)
	req.Header.Set("Authorization", "Bearer valid_token")
	resp, err := app.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	// token must not leak into the response
	assert.Equal(`{"id":"s1","userId":"42","lastAccessedAt":1700000000,"expiresAt":1702592000}`,
		string(body))
}

func TestSessionControllerLogout(t *testing.T) {
	assert := assert.New(t)

	invalidated := ""
	store := mock.SessionStore{
		ByTokenFn: func(token string) (marsool.UserSession, error) {
			return marsool.UserSession{Id: "s1", UserId: "42", Token: token}, nil
		},
		InvalidateByTokenFn: func(token string) error {
			invalidated = token
			return nil
		},
	}
	controller := SessionController{Store: store}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(RequestAuthorizer(store), app)

	req := httptest.NewRequest("DELETE", "/session", nil)
	req.Header.Set("Authorization", "Bearer valid_token")
	resp, err := app.Test(req)
	if !assert.NoError(err) {
		return
	}
	defer resp.Body.Close()

	assert.Equal(fiber.StatusOK, resp.StatusCode)
	assert.Equal("valid_token", invalidated)
}
