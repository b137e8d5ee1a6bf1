package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/domain"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/view"
)

func (a *app) users(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	search := fs.String("search", "", "search name or email")
	role := fs.String("role", "", "filter by role")
	pageNum := fs.Int("page", 1, "page number")
	sortBy := fs.String("sort-by", "", "sort column")
	sortDir := fs.String("sort-dir", "asc", "sort direction (asc|desc)")

	create := fs.Bool("create", false, "create a user (-name -email -password -new-role)")
	name := fs.String("name", "", "user name")
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "user password")
	newRole := fs.String("new-role", domain.RoleOperator, "role for create/update")
	update := fs.Int("update", 0, "update user by id")
	remove := fs.Int("delete", 0, "delete user by id")
	fs.Parse(args)

	page := view.NewUsersPage(a.deps)

	switch {
	case *create:
		created, err := page.Create(ctx, domain.CreateUserRequest{
			Name: *name, Email: *email, Password: *password, Role: *newRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "user created: #%d %s\n", created.ID, created.Email)
		return nil
	case *update > 0:
		updated, err := page.Update(ctx, *update, domain.UpdateUserRequest{
			Name: *name, Email: *email, Password: *password, Role: *newRole,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "user updated: #%d %s\n", updated.ID, updated.Email)
		return nil
	case *remove > 0:
		if err := page.Delete(ctx, *remove); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "user deleted")
		return nil
	}

	v, err := page.Load(ctx, view.UsersParams{
		Search:  *search,
		Role:    *role,
		Page:    *pageNum,
		SortBy:  *sortBy,
		SortDir: *sortDir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "total users: %d (page %d/%d)\n", v.Total, v.Page, v.TotalPages)
	rows := make([][]string, 0, len(v.Users))
	for _, u := range v.Users {
		rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.Email, u.Role})
	}
	renderTable(a.out, []string{"ID", "Name", "Email", "Role"}, rows)
	return nil
}

func (a *app) settings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	name := fs.String("name", "", "new display name")
	oldPassword := fs.String("old-password", "", "current password")
	newPassword := fs.String("new-password", "", "new password")
	cooldown := fs.Int("cooldown", 0, "notification cooldown minutes")
	toggleTheme := fs.Bool("toggle-theme", false, "switch between light and dark")
	fs.Parse(args)

	page := view.NewSettingsPage(a.deps)

	if *toggleTheme {
		fmt.Fprintln(a.out, "theme:", page.ToggleTheme())
		return nil
	}

	if *name != "" || *newPassword != "" || *cooldown > 0 {
		updated, err := page.UpdateProfile(ctx, domain.ProfileUpdate{
			Name:                        *name,
			OldPassword:                 *oldPassword,
			NewPassword:                 *newPassword,
			NotificationCooldownMinutes: *cooldown,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "profile updated for %s\n", updated.Email)
		return nil
	}

	v, err := page.Load(ctx)
	if err != nil {
		return err
	}
	renderKV(a.out, [][2]string{
		{"Name", v.User.Name},
		{"Email", v.User.Email},
		{"Role", v.User.Role},
		{"Cooldown (min)", strconv.Itoa(v.User.NotificationCooldownMinutes)},
		{"Theme", v.Theme},
	})
	return nil
}
