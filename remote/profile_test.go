package remote

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/marsoolapp/marsool"
	"github.com/stretchr/testify/assert"
)

func TestDecodeLoadResponse(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		name       string
		statusCode int
		body       string
		status     marsool.LoadStatus
		fields     marsool.ProfileFields
	}{
		{
			name:       "full record",
			statusCode: fiber.StatusOK,
			body: `{"username":"omar1","displayName":"Omar","phone":"0500000000",` +
				`"email":"omar@marsool.app","address":"Dammam"}`,
			status: marsool.LoadLoaded,
			fields: marsool.ProfileFields{
				Username:    "omar1",
				DisplayName: "Omar",
				Phone:       "0500000000",
				Email:       "omar@marsool.app",
				Address:     "Dammam",
			},
		},
		{
			// missing keys default to empty strings, never null
			name:       "partial record",
			statusCode: fiber.StatusOK,
			body:       `{"displayName":"Omar","phone":"0500000000"}`,
			status:     marsool.LoadLoaded,
			fields:     marsool.ProfileFields{DisplayName: "Omar", Phone: "0500000000"},
		},
		{
			// server-only fields are ignored
			name:       "superset record",
			statusCode: fiber.StatusOK,
			body:       `{"displayName":"Omar","createdAt":1700000000,"ordersCount":12}`,
			status:     marsool.LoadLoaded,
			fields:     marsool.ProfileFields{DisplayName: "Omar"},
		},
		{
			name:       "no profile yet",
			statusCode: fiber.StatusNotFound,
			body:       `{"error_message":"profile not found"}`,
			status:     marsool.LoadEmpty,
		},
		{
			name:       "server error",
			statusCode: fiber.StatusInternalServerError,
			body:       `{"error_message":"Internal Server Error"}`,
			status:     marsool.LoadFailed,
		},
		{
			name:       "garbage body",
			statusCode: fiber.StatusOK,
			body:       `<html>`,
			status:     marsool.LoadFailed,
		},
	}

	for _, tc := range cases {
		result := decodeLoadResponse(tc.statusCode, []byte(tc.body))
		assert.Equal(tc.status, result.Status, tc.name)
		if tc.status == marsool.LoadLoaded {
			assert.Equal(tc.fields, result.Fields, tc.name)
		}
		if tc.status == marsool.LoadFailed {
			assert.Error(result.Err, tc.name)
		}
	}
}

func TestSaveResponseError(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(saveResponseError(fiber.StatusOK, nil))
	assert.NoError(saveResponseError(fiber.StatusNoContent, nil))
	assert.Error(saveResponseError(fiber.StatusBadRequest, []byte(`{"error_message":"invalid body"}`)))
	assert.Error(saveResponseError(fiber.StatusBadGateway, nil))
}

func TestClientRequiresUserId(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	client := &ProfileClient{BaseUrl: "http://accounts.invalid"}

	result := client.Load(ctx)
	assert.Equal(marsool.LoadFailed, result.Status)
	assert.ErrorIs(result.Err, marsool.ErrNoSession)

	err := client.Save(ctx, marsool.ProfileFields{DisplayName: "Sara"})
	assert.ErrorIs(err, marsool.ErrNoSession)
}

func TestProfileUrlEscapesUserId(t *testing.T) {
	assert := assert.New(t)

	client := &ProfileClient{BaseUrl: "https://api.marsool.app", UserId: "42"}
	assert.Equal("https://api.marsool.app/api/users/42", client.profileUrl())

	client.UserId = "user/../admin"
	assert.Equal("https://api.marsool.app/api/users/user%2F..%2Fadmin", client.profileUrl())
}
