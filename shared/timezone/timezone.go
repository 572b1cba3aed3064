package timezone

import (
	"chappbooking/config"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation = time.UTC
)

func init() {
	appLocation = Load(config.Get().App.Timezone)
}

// Load resolves an IANA timezone name, falling back to UTC when it is empty or unknown.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Asia/Jakarta' or 'Europe/Madrid'")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now is the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func Location() *time.Location {
	return appLocation
}
