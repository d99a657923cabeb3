package remote

import (
	"fmt"
	"net/url"
	"strings"
)

const wirePath = "/actormesh"

// endpoint is an opaque transport address: callers never parse it beyond
// equality comparison, and this package is the one place allowed to
// understand its shape. Two forms are accepted: a literal
// "tcp://host:port" and a "ws://host:port/path" websocket URL; both
// resolve to the same websocket listener/dialer since
// golang.org/x/net/websocket is the wire transport here.
func wsURL(endpoint string) (string, error) {
	switch {
	case strings.HasPrefix(endpoint, "ws://"), strings.HasPrefix(endpoint, "wss://"):
		return endpoint, nil
	case strings.HasPrefix(endpoint, "tcp://"):
		hostport := strings.TrimPrefix(endpoint, "tcp://")
		hostport = strings.Replace(hostport, "*", "0.0.0.0", 1)
		return "ws://" + hostport + wirePath, nil
	default:
		return "", fmt.Errorf("remote: malformed endpoint %q", endpoint)
	}
}

// listenAddr extracts the host:port a Receiver should bind, from either
// endpoint form.
func listenAddr(endpoint string) (string, error) {
	u, err := wsURL(endpoint)
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("remote: malformed endpoint %q: %w", endpoint, err)
	}
	return parsed.Host, nil
}
