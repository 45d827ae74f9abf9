// Package notifier delivers one-time codes to users over an abstract
// channel.
//
// The core contract is the Notifier interface; the package ships a
// Postmark-backed email implementation for production and a DevNotifier
// that writes messages to disk for local development. Message subjects
// and bodies are rendered from a locale-aware Catalog so the "your code
// is valid for N minutes" text follows the user's preferred language.
//
// Delivery failure is deliberately non-fatal for callers: an issued
// pending code stays valid whether or not the message made it out, so
// the user can retry delivery or request a fresh code.
//
// # Usage
//
//	catalog, err := notifier.DefaultCatalog()
//	subject, body := catalog.Render("de", map[string]string{
//		"code":    "135 792 468",
//		"minutes": "5",
//	})
//
//	n, err := notifier.NewPostmarkNotifier(cfg)
//	err = n.Send(ctx, notifier.Message{
//		To:      "user@example.com",
//		Subject: subject,
//		Body:    body,
//		Locale:  "de",
//	})
package notifier
