// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

// PresentError renders err for a user, prefixed with where it happened.
// Credentials in the message are masked. An empty prefix yields the bare message.
func PresentError(prefix string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(err.Error())
	if prefix == "" {
		return msg
	}
	return prefix + ": " + msg
}
