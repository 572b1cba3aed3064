// Package timezone resolves the application timezone from APP_TIMEZONE at start-up.
//
//	now := timezone.Now()        // current time in the app timezone
//	loc := timezone.Location()   // the resolved *time.Location
//
// Booking rules read "today" through package clock, which is built on Now.
package timezone
