package server

import (
	"fmt"
	"net/url"

	"vscch/internal/system"
)

// FrontEndURL points the hosted front end at the local port.
func FrontEndURL(guiAddress string, port int) (string, error) {
	u, err := url.Parse(guiAddress)
	if err != nil {
		return "", fmt.Errorf("gui address %q: %w", guiAddress, err)
	}
	q := u.Query()
	q.Set("port", fmt.Sprint(port))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// OpenBrowser tries to open a URL in the system browser.
func OpenBrowser(u string) error {
	return system.OpenBrowser(u)
}
