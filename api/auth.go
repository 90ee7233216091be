package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/junaidrashid-git/revista-gateway/models"
)

// ErrUnexpectedResponse is returned when a 2xx answer lacks a field the
// gateway depends on.
var ErrUnexpectedResponse = errors.New("api: unexpected response")

// guestID is the fixed guest cart id the storefront sends on login.
const guestID = "1"

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathLogin,
		body: map[string]string{
			"email":    email,
			"password": password,
			"guest_id": guestID,
		},
	})
	if err != nil {
		return "", err
	}
	token := firstString(res, "temporary_token", "token")
	if token == "" {
		return "", ErrUnexpectedResponse
	}
	return token, nil
}

// Register creates a customer account and returns the server message.
func (c *Client) Register(ctx context.Context, in models.SignupInput) (string, error) {
	res, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   PathSignup,
		body: map[string]string{
			"f_name":   in.FirstName,
			"l_name":   in.LastName,
			"email":    in.Email,
			"password": in.Password,
			"phone":    in.PhoneNumber,
		},
	})
	if err != nil {
		return "", err
	}
	return message(res), nil
}
