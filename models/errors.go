package models

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateCode is returned when another code already has the same
	// barcode type and number.
	ErrDuplicateCode = errors.New("there is another code with the same number")
	// ErrCodeNotFound is returned when a code is not found.
	ErrCodeNotFound = errors.New("code not found")
	// ErrDuplicateCategory is returned when the category code is taken.
	ErrDuplicateCategory = errors.New("category code already exists")
	// ErrTemplateNotFound is returned when a template is not found.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrUnknownField is returned when a search domain names a field the
	// model cannot be searched on.
	ErrUnknownField = errors.New("unknown search field")
	// ErrUnsupportedOperator is returned for operators outside search.Operator.
	ErrUnsupportedOperator = errors.New("unsupported search operator")
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// errorMapping maps database failures of one model to the sentinel
// errors of this package. Nil fields leave the error untouched.
type errorMapping struct {
	notFound      error
	duplicate     error
	missingParent error
}

var (
	codeErrors     = errorMapping{notFound: ErrCodeNotFound, duplicate: ErrDuplicateCode, missingParent: ErrProductNotFound}
	productErrors  = errorMapping{notFound: ErrProductNotFound, missingParent: ErrTemplateNotFound}
	templateErrors = errorMapping{notFound: ErrTemplateNotFound}
	categoryErrors = errorMapping{duplicate: ErrDuplicateCategory}
)

func (m errorMapping) translate(err error) error {
	if err == nil {
		return nil
	}
	if m.notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return m.notFound
	}
	if m.duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return m.duplicate
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pgUniqueViolation && m.duplicate != nil:
			return m.duplicate
		case pqErr.Code == pgForeignKeyViolation && m.missingParent != nil:
			return m.missingParent
		}
	}
	return err
}
