package di

import (
	"math/rand"
	"time"

	"donmario/internal/realtime"
	"donmario/transport/http"
)

// App bundles the long-running pieces the entrypoint has to start.
type App struct {
	HTTP   *http.HTTP
	Bridge *realtime.Bridge
}

// provideRand seeds the table-assignment random source. Tests construct the
// reservation service with their own seeded source instead.
func provideRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
}
