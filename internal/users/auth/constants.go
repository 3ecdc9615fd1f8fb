// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Credential Constraints

const (
	// UsernameMinLength is the minimum accepted username length.
	UsernameMinLength = 3

	// UsernameMaxLength is the maximum accepted username length.
	UsernameMaxLength = 32

	// PasswordMinLength is the minimum accepted password length.
	// bcrypt does the heavy lifting against brute force; this only blocks
	// trivially guessable inputs.
	PasswordMinLength = 8

	// PasswordMaxLength caps input size; bcrypt ignores bytes beyond 72.
	PasswordMaxLength = 72
)
