// Package otpcode issues and validates time-boxed one-time codes.
//
// A pending code is the single active (encrypted code, expiry) pair a
// user holds for a given purpose, e.g. "login_email_code". Its
// lifecycle is a small state machine:
//
//	NONE -> PENDING   Issue stores a freshly encrypted code with an
//	                  absolute expiry, silently replacing any prior
//	                  pending code for the same (user, purpose).
//	PENDING -> NONE   Validate consumes the code on an exact match.
//	PENDING -> EXPIRED -> NONE
//	                  Expiry is detected lazily at validate time; the
//	                  stale record is purged in the same step.
//
// Validate reports one of three results: ResultValid, ResultInvalid or
// ResultExpired. Expected negative outcomes are results, never errors;
// only infrastructure failures (store unreachable, codec misconfigured)
// surface as errors.
//
// The fetch/compare/purge cycle runs inside the store's atomic Update,
// so a double-submitted code can be reported valid at most once.
//
// # Usage
//
//	svc := otpcode.New(store, c, codec.DefaultProfile,
//		otpcode.WithLogger(log),
//	)
//
//	err := svc.Issue(ctx, userID, "login_email_code", "135792468", 5*time.Minute)
//
//	result, err := svc.Validate(ctx, userID, "login_email_code", "135 792 468")
//	if result == otpcode.ResultValid {
//		// second factor passed
//	}
//
// Submitted codes are compared whitespace-insensitively: "135 792 468"
// and "135792468" validate identically.
package otpcode
