package connection

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	ierr "github.com/flexprice/paymenthub-go/internal/errors"
)

// tlsConfig returns the TLS settings for custom trust, or nil when the
// platform roots apply.
func tlsConfig(roots *x509.CertPool, bundleFile string) (*tls.Config, error) {
	if roots == nil && bundleFile == "" {
		return nil, nil
	}

	if roots == nil {
		pem, err := os.ReadFile(bundleFile)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Could not read CA bundle %s", bundleFile).
				Mark(ierr.ErrConfiguration)
		}
		roots = x509.NewCertPool()
		if !roots.AppendCertsFromPEM(pem) {
			return nil, ierr.NewErrorf("no certificates found in %s", bundleFile).
				WithHintf("CA bundle %s contains no PEM certificates", bundleFile).
				Mark(ierr.ErrConfiguration)
		}
	}

	return &tls.Config{
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
	}, nil
}
