package api

import "context"

// AccountClient covers login and registration.
type AccountClient struct {
	base *Client
}

// NewAccountClient returns client.
func NewAccountClient(base *Client) *AccountClient {
	return &AccountClient{base: base}
}

// Login exchanges credentials for a session token and role flag.
func (c *AccountClient) Login(ctx context.Context, username, password string) (LoginResult, error) {
	raw, err := c.base.Post(ctx, "/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}
	var result LoginResult
	if err := decode(raw, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Register creates a new user account. The service expects the password
// repeated as re_password.
func (c *AccountClient) Register(ctx context.Context, username, password string) error {
	_, err := c.base.Post(ctx, "/user/register", map[string]string{
		"username":    username,
		"password":    password,
		"re_password": password,
	})
	return err
}
