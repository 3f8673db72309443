// Package apperr is the error taxonomy shared by services and the rest layer.
// Clients match on Code, never on Message.
package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
)

type Code string

const (
	CodeValidationFailed     Code = "VALIDATION_FAILED"
	CodeInvalidCredentials   Code = "INVALID_CREDENTIALS"
	CodeDoctorDisabled       Code = "DOCTOR_DISABLED"
	CodePatientDisabled      Code = "PATIENT_DISABLED"
	CodeUnauthenticated      Code = "UNAUTHENTICATED"
	CodeSessionRevoked       Code = "SESSION_REVOKED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeCannotDemoteSelf     Code = "CANNOT_DEMOTE_SELF"
	CodeCannotDeactivateSelf Code = "CANNOT_DEACTIVATE_SELF"
	CodeDoctorNotFound       Code = "DOCTOR_NOT_FOUND"
	CodePatientNotFound      Code = "PATIENT_NOT_FOUND"
	CodeBackupNotFound       Code = "BACKUP_NOT_FOUND"
	CodeEmailTaken           Code = "EMAIL_TAKEN"
	CodeCRMTaken             Code = "CRM_TAKEN"
	CodeCPFTaken             Code = "CPF_TAKEN"
	CodeRateLimited          Code = "RATE_LIMITED"
	CodeInternal             Code = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Code    Code
	Message string
	// Field names the offending input for conflicts and single-field validation failures.
	Field string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// Is matches on Code so wrapped copies still compare equal to the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrInvalidCredentials = New(KindUnauthenticated, CodeInvalidCredentials, "invalid credentials")
	ErrDoctorDisabled     = New(KindForbidden, CodeDoctorDisabled, "access denied, contact the administrator")
	ErrPatientDisabled    = New(KindForbidden, CodePatientDisabled, "access denied, contact support")

	ErrUnauthenticated = New(KindUnauthenticated, CodeUnauthenticated, "authentication required")
	ErrSessionRevoked  = New(KindUnauthenticated, CodeSessionRevoked, "session revoked, sign in again")

	ErrForbidden            = New(KindForbidden, CodeForbidden, "operation not allowed")
	ErrCannotDemoteSelf     = New(KindValidation, CodeCannotDemoteSelf, "you cannot remove your own admin role")
	ErrCannotDeactivateSelf = New(KindValidation, CodeCannotDeactivateSelf, "you cannot deactivate your own account")

	ErrDoctorNotFound  = New(KindNotFound, CodeDoctorNotFound, "doctor not found")
	ErrPatientNotFound = New(KindNotFound, CodePatientNotFound, "patient not found")
	// ErrPatientNotOwned hides foreign patients from laudo creation behind a 404.
	ErrPatientNotOwned = New(KindNotFound, CodePatientNotFound, "patient not found or not owned")
	ErrBackupNotFound  = New(KindNotFound, CodeBackupNotFound, "database file not found")

	ErrEmailTaken = &Error{Kind: KindConflict, Code: CodeEmailTaken, Message: "email already registered", Field: "email"}
	ErrCRMTaken   = &Error{Kind: KindConflict, Code: CodeCRMTaken, Message: "crm already registered", Field: "crm"}
	ErrCPFTaken   = &Error{Kind: KindConflict, Code: CodeCPFTaken, Message: "cpf already registered", Field: "cpf"}

	ErrRateLimited = New(KindRateLimited, CodeRateLimited, "too many attempts, try again later")
	ErrInternal    = New(KindInternal, CodeInternal, "internal server error")
)

// Validation builds a single-field validation failure.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Code: CodeValidationFailed, Message: msg, Field: field}
}

// As unwraps err into an *Error. Anything foreign is reported as ErrInternal and ok=false.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return ErrInternal, false
}
