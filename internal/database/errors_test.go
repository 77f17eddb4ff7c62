package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestMySQLErrorClassification(t *testing.T) {
	dup := fmt.Errorf("inserting user: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a' for key 'uq_users_username'"})
	fk := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	ref := &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}
	plain := errors.New("driver: bad connection")

	if !IsDuplicateEntry(dup) {
		t.Error("expected wrapped 1062 to be a duplicate entry")
	}
	if IsDuplicateEntry(fk) || IsDuplicateEntry(plain) {
		t.Error("only 1062 is a duplicate entry")
	}
	if !IsMissingReference(fk) {
		t.Error("expected 1452 to be a missing reference")
	}
	if !IsReferenced(ref) {
		t.Error("expected 1451 to be a referenced row")
	}
	if IsReferenced(plain) || IsMissingReference(nil) {
		t.Error("non-mysql errors must not classify")
	}
}

func TestIsOutOfRange(t *testing.T) {
	err := fmt.Errorf("inserting answer sheet: %w",
		&mysql.MySQLError{Number: 1264, Message: "Out of range value for column 'max_marks' at row 1"})
	if !IsOutOfRange(err) {
		t.Error("expected wrapped 1264 to be out of range")
	}
	if IsOutOfRange(&mysql.MySQLError{Number: 1062}) || IsOutOfRange(errors.New("plain")) {
		t.Error("only 1264 is out of range")
	}
}
