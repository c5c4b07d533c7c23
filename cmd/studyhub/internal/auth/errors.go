// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package auth

import "strings"

// AuthErrorType classifies account and session failures.
type AuthErrorType int

const (
	// AuthErrUnknown covers provider codes with no dedicated handling.
	AuthErrUnknown AuthErrorType = iota
	// AuthErrInvalidCredentials means the email/password pair was rejected.
	AuthErrInvalidCredentials
	// AuthErrEmailExists means signup hit an already registered address.
	AuthErrEmailExists
	// AuthErrWeakPassword means the provider rejected the password.
	AuthErrWeakPassword
	// AuthErrUnverifiedEmail means the account exists but has not clicked
	// the verification link yet.
	AuthErrUnverifiedEmail
	// AuthErrTooManyAttempts means the provider throttled the caller.
	AuthErrTooManyAttempts
	// AuthErrCooldown means a verification resend came too soon.
	AuthErrCooldown
	// AuthErrNoSession means no user is signed in on this machine.
	AuthErrNoSession
)

func (t AuthErrorType) String() string {
	switch t {
	case AuthErrInvalidCredentials:
		return "invalid_credentials"
	case AuthErrEmailExists:
		return "email_exists"
	case AuthErrWeakPassword:
		return "weak_password"
	case AuthErrUnverifiedEmail:
		return "unverified_email"
	case AuthErrTooManyAttempts:
		return "too_many_attempts"
	case AuthErrCooldown:
		return "cooldown"
	case AuthErrNoSession:
		return "no_session"
	default:
		return "unknown"
	}
}

// AuthError is a failure from the identity provider or the local session
// layer. Message is safe to show to the user; Remediation, when set,
// tells them what to do next.
type AuthError struct {
	Type        AuthErrorType
	Message     string
	Remediation string
}

var _ error = (*AuthError)(nil)

func (e *AuthError) Error() string { return e.Message }

// providerCodeToError maps Identity Toolkit error codes to user-facing
// errors. The provider sometimes appends detail after the code
// ("WEAK_PASSWORD : Password should be..."), so match on the leading
// token.
func providerCodeToError(code string) *AuthError {
	head, _, _ := strings.Cut(code, " ")
	switch head {
	case "EMAIL_EXISTS":
		return &AuthError{
			Type:        AuthErrEmailExists,
			Message:     "An account with this email already exists.",
			Remediation: "Sign in instead, or use the password reset if you forgot your password.",
		}
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return &AuthError{
			Type:    AuthErrInvalidCredentials,
			Message: "Incorrect email or password.",
		}
	case "WEAK_PASSWORD":
		return &AuthError{
			Type:    AuthErrWeakPassword,
			Message: "Password should be at least 6 characters.",
		}
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return &AuthError{
			Type:        AuthErrTooManyAttempts,
			Message:     "Too many attempts. Try again later.",
			Remediation: "Wait a few minutes before retrying.",
		}
	default:
		return &AuthError{
			Type:    AuthErrUnknown,
			Message: "Authentication failed: " + code,
		}
	}
}
