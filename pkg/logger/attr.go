package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Purpose records the pending-code purpose under the key "purpose".
func Purpose(purpose string) slog.Attr {
	return slog.String("purpose", purpose)
}

// Method records a validation method identifier under the key "method".
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Profile records an encryption profile name under the key "profile".
func Profile(profile string) slog.Attr {
	return slog.String("profile", profile)
}

// Component identifies the subsystem that generated the record under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
