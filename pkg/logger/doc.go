// Package logger provides typed slog attribute helpers shared by the
// tfakit packages.
//
// The helpers keep attribute keys consistent across the module so that
// log aggregation can rely on stable field names (user_id, purpose,
// method, component, error) regardless of which package emitted the
// record.
//
// # Usage
//
//	logger.Error(err)
//	logger.UserID(userID)
//	logger.Purpose("login_email_code")
//	logger.Component("otpcode")
//
// All helpers return an empty slog.Attr for nil input, which slog drops
// silently, so call sites never need nil checks.
package logger
