package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPgError(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	if !IsUniqueViolation(err, "users_email_key") {
		t.Fatal("expected match on constraint name")
	}
	if IsUniqueViolation(err, "cars_license_plate_key") {
		t.Fatal("expected mismatch on a different constraint")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected match when no constraint is requested")
	}
}

func TestIsUniqueViolationPostgresMessage(t *testing.T) {
	err := errors.New(`duplicate key value violates unique constraint "appointments_car_scheduled_key"`)

	if !IsUniqueViolation(err, "appointments_car_scheduled_key") {
		t.Fatal("expected match on named constraint in message")
	}
	if IsUniqueViolation(err, "service_votes_user_center_period_key") {
		t.Fatal("expected mismatch on a different constraint")
	}
}

func TestIsUniqueViolationSQLiteMessage(t *testing.T) {
	// The sqlite driver reports columns, not the index name.
	err := errors.New("UNIQUE constraint failed: post_reactions.post_id, post_reactions.user_id")

	if !IsUniqueViolation(err, "post_reactions_post_user_key") {
		t.Fatal("expected sqlite duplicate to match despite missing constraint name")
	}
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	if IsUniqueViolation(nil, "users_email_key") {
		t.Fatal("nil error is not a violation")
	}
	if IsUniqueViolation(errors.New("connection reset"), "") {
		t.Fatal("unrelated error is not a violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation is not a unique violation")
	}
}
