package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/parishportal/parishportal/internal/client/gate"
	"github.com/parishportal/parishportal/internal/client/services"
	"github.com/parishportal/parishportal/internal/common"
)

// Login prompts for credentials and authenticates. Failures are reported
// inline; they never abort the REPL.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	password, err := GetPassword(os.Stdout, "Enter password: ")
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	defer common.WipeByteArray(password)

	res := a.auth.Login(ctx, email, password)
	if !res.Success {
		printlnFn("Login failed:", res.Message)
		return nil
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", res.User.FullName()))
	return nil
}

// Register prompts for account details and creates an account. The user
// still needs to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	first, err := GetOptionalText(a.reader, "First name", os.Stdout)
	if err != nil {
		return err
	}
	last, err := GetOptionalText(a.reader, "Last name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout, "Choose a password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.auth.Register(ctx, services.RegisterInput{
		Username:  username,
		Email:     email,
		Password:  string(password),
		FirstName: first,
		LastName:  last,
	})
	if !res.Success {
		printlnFn("Registration failed:", res.Message)
		return nil
	}

	printlnFn("Account created, you can log in now")
	return nil
}

// Logout clears the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current principal.
func (a *App) Whoami(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s", u.FullName(), u.Email, u.Role))
	return nil
}

// Profile shows the member profile page.
func (a *App) Profile(ctx context.Context) error {
	if !a.guard(gate.RequireMember, "/member-portal/profile") {
		return nil
	}

	u := a.auth.CurrentUser()
	printlnFn("Name:    ", u.FullName())
	printlnFn("Email:   ", u.Email)
	printlnFn("Username:", u.Username)
	if u.Phone != "" {
		printlnFn("Phone:   ", u.Phone)
	}
	if u.Address != "" {
		printlnFn("Address: ", u.Address)
	}
	if u.BaptismDate != "" {
		printlnFn("Baptized:", u.BaptismDate)
	}
	return nil
}

// UpdateProfile prompts for the editable profile fields and submits them.
// Blank answers keep the current values.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.guard(gate.RequireMember, "/member-portal/profile") {
		return nil
	}

	u := a.auth.CurrentUser()
	in := services.ProfileInput{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Address:     u.Address,
		DateOfBirth: u.DateOfBirth,
		BaptismDate: u.BaptismDate,
	}

	prompts := []struct {
		label string
		field *string
	}{
		{"First name", &in.FirstName},
		{"Last name", &in.LastName},
		{"Phone", &in.Phone},
		{"Address", &in.Address},
	}
	for _, p := range prompts {
		answer, err := GetOptionalText(a.reader, fmt.Sprintf("%s [%s]", p.label, *p.field), os.Stdout)
		if err != nil {
			return err
		}
		if answer != "" {
			*p.field = answer
		}
	}

	res, err := a.auth.UpdateProfile(ctx, in)
	if err != nil {
		printlnFn("Could not reach the server, please try again")
		return err
	}
	if !res.Success {
		printlnFn("Update failed:", res.Message)
		for _, fe := range res.Errors {
			printlnFn(fmt.Sprintf("  %s: %s", fe.Field, fe.Message))
		}
		return nil
	}

	printlnFn("Profile updated")
	return nil
}

// ChangePassword prompts for the current and new password.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.guard(gate.RequireMember, "/member-portal/security") {
		return nil
	}

	current, err := GetPassword(os.Stdout, "Current password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := GetPassword(os.Stdout, "New password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	env, err := a.auth.ChangePassword(ctx, current, next)
	if err != nil {
		printlnFn("Could not reach the server, please try again")
		return err
	}
	if !env.Success {
		printlnFn("Password change failed:", env.Message)
		return nil
	}

	printlnFn("Password changed")
	return nil
}
