package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUnauthenticated = errors.New("login required")
	ErrForbidden       = errors.New("access forbidden")
	ErrPolicyViolation = errors.New("policy violation")
)

// PolicyViolation is a rejected mutation. Message is meant for the end user.
type PolicyViolation struct {
	Reason  string
	Message string
}

func (e *PolicyViolation) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrPolicyViolation) match every violation.
func (e *PolicyViolation) Is(target error) bool {
	return target == ErrPolicyViolation
}

var (
	ErrLastUser = &PolicyViolation{
		Reason:  "last_user",
		Message: "Debe haber al menos un administrador.",
	}
	ErrSelfRemoval = &PolicyViolation{
		Reason:  "self_removal",
		Message: "No puedes eliminarte a ti mismo.",
	}
)
