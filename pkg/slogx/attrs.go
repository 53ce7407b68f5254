package slogx

import (
	"log/slog"
	"strings"
)

// Err is shorthand for the error attribute used across services.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

// TokenHint logs a short, non-reversible hint of a secret instead of the
// secret itself. Pass an already computed fingerprint.
func TokenHint(fingerprint string) slog.Attr {
	if len(fingerprint) > 8 {
		fingerprint = fingerprint[:8]
	}
	return slog.String("token_hint", fingerprint)
}

// Email logs an address with the local part masked: "j***@example.com".
func Email(addr string) slog.Attr {
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return slog.String("email", "***")
	}
	return slog.String("email", addr[:1]+"***"+addr[at:])
}
