package main

import (
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/rs/zerolog/log"
)

const maxPortAttempts = 10

// listen binds the preferred port, moving up one port at a time while the
// address is in use, for at most attempts extra ports.
func listen(preferred, attempts int) (net.Listener, int, error) {
	for port := preferred; port <= preferred+attempts; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			return ln, port, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, 0, fmt.Errorf("listen on port %d: %w", port, err)
		}
		log.Warn().Int("port", port).Msgf("⚠️ Port %d in use, trying %d...", port, port+1)
	}
	return nil, 0, fmt.Errorf("could not bind to any port between %d and %d", preferred, preferred+attempts)
}
