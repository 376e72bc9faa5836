// Package domain normalizes user-supplied domain strings for rank
// tracking.
package domain

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains parsed domain information
type Info struct {
	Host        string `json:"host"`
	Registrable string `json:"registrable"`
	Subdomain   string `json:"subdomain,omitempty"`
}

// Parse normalizes a domain string that may arrive as a bare host, a host
// with port, or a full URL, and derives its registrable (eTLD+1) form.
func Parse(input string) (*Info, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, ErrInvalidDomain
		}
		input = u.Hostname()
	}

	if idx := strings.LastIndex(input, ":"); idx != -1 {
		input = input[:idx]
	}

	input = strings.TrimSuffix(input, ".")

	if input == "" || !strings.Contains(input, ".") {
		return nil, ErrInvalidDomain
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return nil, ErrInvalidDomain
	}

	subdomain := ""
	if etld1 != input {
		subdomain = strings.TrimSuffix(input, "."+etld1)
	}

	return &Info{
		Host:        input,
		Registrable: etld1,
		Subdomain:   subdomain,
	}, nil
}
