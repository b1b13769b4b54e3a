package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/blogplatform/blog/internal/core/domain"
	"github.com/blogplatform/blog/internal/core/ports"
)

func TestUserAdmin_ForbiddenForNonAdmin(t *testing.T) {
	dir := newStubDirectory(domain.Account{ID: "u1", Username: "bob", Email: "bob@x.com"})
	svc := NewUserAdminService(dir, zerolog.Nop())
	ctx := context.Background()
	bob := author("bob@x.com", "Bob Lee")

	_, err := svc.ListUsers(ctx, bob)
	expectErr(t, err, domain.ErrForbidden)
	_, err = svc.CreateUser(ctx, ports.NewUserInput{Username: "ann", Email: "ann@x.com", Password: "Password1"}, bob)
	expectErr(t, err, domain.ErrForbidden)
	expectErr(t, svc.UpdateUser(ctx, "u1", "bob", "bob@x.com", false, bob), domain.ErrForbidden)
	expectErr(t, svc.ResetPassword(ctx, "u1", "Password1", bob), domain.ErrForbidden)
	expectErr(t, svc.DeleteUser(ctx, "u1", domain.Caller{}), domain.ErrUnauthenticated)

	if len(dir.calls) != 0 {
		t.Fatalf("directory touched: %v", dir.calls)
	}
}

func TestUserAdmin_CreateUser(t *testing.T) {
	dir := newStubDirectory(domain.Account{ID: "u1", Username: "bob", Email: "bob@x.com"})
	svc := NewUserAdminService(dir, zerolog.Nop())
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, ports.NewUserInput{Username: " ann ", Email: "ann@x.com", Password: "Password1", Enabled: true}, admin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc := dir.accounts[id]; acc == nil || acc.Username != "ann" || !acc.Enabled {
		t.Errorf("unexpected account: %+v", acc)
	}

	_, err = svc.CreateUser(ctx, ports.NewUserInput{Username: "bob", Email: "bob2@x.com", Password: "Password1"}, admin())
	expectErr(t, err, domain.ErrAccountExists)

	_, err = svc.CreateUser(ctx, ports.NewUserInput{Username: "a b", Email: "x", Password: "weak"}, admin())
	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserAdmin_UpdateUser(t *testing.T) {
	dir := newStubDirectory(domain.Account{ID: "u1", Username: "bob", Email: "bob@x.com", FirstName: "Bob", Enabled: true})
	svc := NewUserAdminService(dir, zerolog.Nop())
	ctx := context.Background()

	if err := svc.UpdateUser(ctx, "u1", "bobby", "bobby@x.com", false, admin()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	acc := dir.accounts["u1"]
	if acc.Username != "bobby" || acc.Email != "bobby@x.com" || acc.Enabled || acc.FirstName != "Bob" {
		t.Errorf("unexpected account: %+v", acc)
	}

	expectErr(t, svc.UpdateUser(ctx, "missing", "x", "x@x.com", true, admin()), domain.ErrAccountNotFound)
}

func TestUserAdmin_ResetPasswordChecksStrength(t *testing.T) {
	dir := newStubDirectory(domain.Account{ID: "u1", Username: "bob", Email: "bob@x.com"})
	svc := NewUserAdminService(dir, zerolog.Nop())
	ctx := context.Background()

	if _, ok := domain.AsValidation(svc.ResetPassword(ctx, "u1", "abc", admin())); !ok {
		t.Fatal("expected validation error")
	}
	if err := svc.ResetPassword(ctx, "u1", "Password1", admin()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir.passwords["u1"] != "Password1" {
		t.Error("password not pushed")
	}
}
