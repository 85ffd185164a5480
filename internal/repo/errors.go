package repo

import (
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// DuplicateError reports a unique index violation on Field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

// IsDuplicate reports whether err is a DuplicateError and returns the field.
func IsDuplicate(err error) (string, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Field, true
	}
	return "", false
}

// E11000 messages name the index, e.g. "index: email_1 dup key".
var reDupIndex = regexp.MustCompile(`index: (\w+?)_-?1`)

func translateWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		field := "key"
		if m := reDupIndex.FindStringSubmatch(err.Error()); len(m) == 2 {
			field = m[1]
		}
		return &DuplicateError{Field: field}
	}
	return fmt.Errorf("%s: %w", op, err)
}
