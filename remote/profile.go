// Package remote talks to the account service profile api.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/marsoolapp/marsool"
)

// ProfileClient reads and writes one user's profile over the account
// service rest api. A single attempt per call, no retry, no idempotency
// key - retrying is the user's action, not the transport's.
type ProfileClient struct {
	BaseUrl string
	UserId  string
}

var _ marsool.ProfileBackend = (*ProfileClient)(nil)

func (c *ProfileClient) profileUrl() string {
	return c.BaseUrl + "/api/users/" + url.PathEscape(c.UserId)
}

func (c *ProfileClient) Load(ctx context.Context) marsool.LoadResult {
	if c.UserId == "" {
		return marsool.FailedResult(marsool.ErrNoSession)
	}

	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(fiber.MethodGet)
	req.SetRequestURI(c.profileUrl())

	if err := agent.Parse(); err != nil {
		return marsool.FailedResult(fmt.Errorf("agent parse: %w", err))
	}

	statusCode, body, errs := agent.Bytes()
	if errs != nil {
		return marsool.FailedResult(fmt.Errorf("agent bytes: %v", errs))
	}
	return decodeLoadResponse(statusCode, body)
}

// decodeLoadResponse maps the account service response to a load result.
// 404 means the user has no profile yet; other non-2xx codes fail the
// load. Keys missing from the body stay empty strings and server-only
// fields are ignored.
func decodeLoadResponse(statusCode int, body []byte) marsool.LoadResult {
	switch {
	case statusCode == fiber.StatusNotFound:
		return marsool.EmptyResult()
	case statusCode < 200 || statusCode >= 300:
		return marsool.FailedResult(fmt.Errorf("invalid status code %d: %s", statusCode, string(body)))
	}

	var fields marsool.ProfileFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return marsool.FailedResult(fmt.Errorf("unmarshal body: %w", err))
	}
	return marsool.Loaded(fields)
}

func (c *ProfileClient) Save(ctx context.Context, fields marsool.ProfileFields) error {
	if c.UserId == "" {
		return marsool.ErrNoSession
	}

	payload, err := json.Marshal(&fields)
	if err != nil {
		return fmt.Errorf("profile serialize: %w", err)
	}

	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(fiber.MethodPut)
	req.Header.SetContentType(fiber.MIMEApplicationJSON)
	req.SetRequestURI(c.profileUrl())
	req.SetBody(payload)

	if err := agent.Parse(); err != nil {
		return fmt.Errorf("agent parse: %w", err)
	}

	statusCode, body, errs := agent.Bytes()
	if errs != nil {
		return fmt.Errorf("agent bytes: %v", errs)
	}
	// response body of the updated record is discarded, 2xx is enough
	return saveResponseError(statusCode, body)
}

func saveResponseError(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return fmt.Errorf("invalid status code %d: %s", statusCode, string(body))
}
