package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/parishportal/parishportal/internal/client/client"
	"github.com/parishportal/parishportal/internal/client/gate"
	"github.com/parishportal/parishportal/internal/client/models"
	"github.com/parishportal/parishportal/internal/client/services"
)

// fakeAuth satisfies services.AuthService with fixed session state; only
// the session-view methods matter to the gate.
type fakeAuth struct {
	loading bool
	user    *models.User
}

func (f *fakeAuth) CheckAuth(ctx context.Context) {}
func (f *fakeAuth) Login(ctx context.Context, identifier string, password []byte) services.LoginResult {
	return services.LoginResult{}
}
func (f *fakeAuth) Logout(ctx context.Context) error { return nil }
func (f *fakeAuth) Register(ctx context.Context, in services.RegisterInput) services.LoginResult {
	return services.LoginResult{}
}
func (f *fakeAuth) UpdateProfile(ctx context.Context, in services.ProfileInput) (*client.Result[models.User], error) {
	return nil, nil
}
func (f *fakeAuth) ChangePassword(ctx context.Context, current, next []byte) (*client.Envelope, error) {
	return nil, nil
}
func (f *fakeAuth) CurrentUser() *models.User { return f.user }
func (f *fakeAuth) IsAuthenticated() bool     { return f.user != nil }
func (f *fakeAuth) Loading() bool             { return f.loading }

func TestGuard(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	member := &models.User{Role: models.RoleMember}

	tests := []struct {
		name     string
		auth     *fakeAuth
		required gate.Requirement
		allowed  bool
		hint     string
	}{
		{"loading shows wait hint", &fakeAuth{loading: true}, gate.RequireMember, false, "try again"},
		{"guest sent to login", &fakeAuth{}, gate.RequireMember, false, "log in first"},
		{"member passes member view", &fakeAuth{user: member}, gate.RequireMember, true, ""},
		{"member bounced from admin view", &fakeAuth{user: member}, gate.RequireAdmin, false, "member portal"},
		{"admin passes admin view", &fakeAuth{user: admin}, gate.RequireAdmin, true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orig := printlnFn
			var printed []string
			printlnFn = func(a ...any) (int, error) {
				for _, v := range a {
					printed = append(printed, v.(string))
				}
				return 0, nil
			}
			defer func() { printlnFn = orig }()

			app := &App{auth: tc.auth}
			got := app.guard(tc.required, "/member-portal")
			if got != tc.allowed {
				t.Fatalf("guard = %v, want %v", got, tc.allowed)
			}
			if tc.allowed {
				if len(printed) != 0 {
					t.Fatalf("allowed view printed output: %v", printed)
				}
				return
			}
			joined := strings.Join(printed, " ")
			if !strings.Contains(joined, tc.hint) {
				t.Fatalf("output %q missing hint %q", joined, tc.hint)
			}
		})
	}
}
