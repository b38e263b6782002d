package main

import (
	"idresolve/internal/config"
	"idresolve/pkg/metrics"
	"idresolve/pkg/profiles/instagram"
	"idresolve/pkg/ratelimit"
	"idresolve/pkg/signer"
	"idresolve/pkg/transport"
	"net/http"
	"time"
)

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Timeout:   cfg.Instagram.RequestTimeout,
		Transport: transport.WithLogging(http.DefaultTransport),
	}
}

// newInstagram builds the profile client. Without a signing key the client
// can still check the session and resolve profiles, but lookups fail.
func newInstagram(cfg *config.Config, httpClient *http.Client, m *metrics.Metrics) (*instagram.Client, error) {
	var sig *signer.Signer
	if cfg.Instagram.SigKey != "" {
		var err error
		if sig, err = signer.New(cfg.Instagram.SigKey, cfg.Instagram.SigKeyVersion); err != nil {
			return nil, err //nolint: wrapcheck
		}
	}

	return instagram.New(httpClient, instagram.Options{
		WebBaseURL:      cfg.Instagram.WebBaseURL,
		APIBaseURL:      cfg.Instagram.APIBaseURL,
		WebUserAgent:    cfg.Instagram.WebUserAgent,
		LookupUserAgent: cfg.Instagram.LookupUserAgent,
		SessionID:       cfg.Session.ID,
		Signer:          sig,
		Gate:            ratelimit.New(cfg.Instagram.RatePerSecond),
		Backoff: instagram.Backoff{
			MaxRetries: cfg.Instagram.LookupMaxRetries,
			Unit:       time.Second,
		},
		Metrics: m,
	}), nil
}
