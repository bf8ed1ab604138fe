package crypto

import (
	"fmt"
	"io/ioutil"

	"crypto/tls"
	"crypto/x509"
)

// Functions

// NewClientTLSConfig returns a TLS config to be used when
// dialing an IMAP server or when upgrading a plaintext
// connection after STARTTLS. It defines very strict defaults
// but assumes that available system cert pools will be used
// when verifying certificates. Good parts of the parameters
// were taken from the excellent post:
// "Achieving a Perfect SSL Labs Score with Go":
// https://blog.bracelab.com/achieving-perfect-ssl-labs-score-with-go
func NewClientTLSConfig(serverName string, rootCertLoc string, insecureSkipVerify bool) (*tls.Config, error) {

	config := &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: insecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
		CurvePreferences:   []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		CipherSuites: []uint16{
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
			tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_RSA_WITH_AES_256_CBC_SHA,
		},
	}

	// Servers with certificates outside the system pools,
	// e.g. self-signed test setups, supply their root
	// certificate in PEM format via the config file.
	if rootCertLoc != "" {

		rootCert, err := ioutil.ReadFile(rootCertLoc)
		if err != nil {
			return nil, fmt.Errorf("reading root certificate into memory failed with: %v", err)
		}

		config.RootCAs = x509.NewCertPool()

		if ok := config.RootCAs.AppendCertsFromPEM(rootCert); !ok {
			return nil, fmt.Errorf("failed to append root certificate at '%s' to root CA pool", rootCertLoc)
		}
	}

	return config, nil
}
