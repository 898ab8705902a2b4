// Package timezone provides timezone utilities for the application.
//
// The timezone is configured via the APP_TIMEZONE environment variable and is
// initialized when the package is imported. Use standard IANA timezone names
// ("UTC", "Europe/Madrid", "America/New_York").
package timezone
