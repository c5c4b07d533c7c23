// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package auth manages accounts and sessions against the identity
// provider.
//
// # Problem Statement
//
// Every API call needs a fresh bearer token, but the identity provider's
// tokens expire hourly, accounts must verify their email before the
// service accepts them, and verification emails are expensive enough that
// the provider throttles them. A CLI additionally has to survive process
// restarts without asking for the password every time.
//
// # Solution
//
// Client speaks the Identity Toolkit REST surface (signUp,
// signInWithPassword, lookup, sendOobCode, and the secure-token refresh
// endpoint). Sign-in rejects unverified accounts. The session (uid, email,
// tokens) persists under the data directory; the refresh token lives in a
// memguard enclave while in memory and is only opened for the refresh
// call. Client implements the api.TokenSource contract: IDToken returns
// the cached token and transparently refreshes it near expiry.
//
// Verification resends are limited to one per minute. The last-sent
// timestamp persists next to the session so the cooldown holds across
// restarts.
package auth
