package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)

	if !IsUniqueViolation(pgErr, "") {
		t.Fatal("expected generic duplicate-key match")
	}
	if !IsUniqueViolation(pgErr, "idx_users_email") {
		t.Fatal("expected named-constraint match")
	}
	if IsUniqueViolation(pgErr, "idx_orders_user_cursor") {
		t.Fatal("unrelated constraint name should not match")
	}
	if IsUniqueViolation(nil, "idx_users_email") {
		t.Fatal("nil error should never match")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("non-duplicate error should not match")
	}
}
