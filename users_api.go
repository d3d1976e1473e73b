package renamed

import "context"

// UsersAPI exposes the authenticated user's profile and credit balance.
type UsersAPI struct {
	httpClient *httpClient
}

func newUsersAPI(httpClient *httpClient) *UsersAPI {
	return &UsersAPI{httpClient: httpClient}
}

// Me returns the current user. Credits is nil when the server omits the
// field, distinct from an explicit zero.
func (u *UsersAPI) Me() (*User, error) {
	return u.MeWithContext(context.Background())
}

// MeWithContext returns the current user with a caller-supplied context.
func (u *UsersAPI) MeWithContext(ctx context.Context) (*User, error) {
	var user User
	if err := u.httpClient.get(ctx, "/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
