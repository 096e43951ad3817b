package pkcs12

import (
	"crypto/tls"

	"software.sslmate.com/src/go-pkcs12"
)

// ToTLSCertificate decodes a PKCS#12 archive into a TLS client certificate,
// including any chain certificates
func ToTLSCertificate(pfxData []byte, password string) (tls.Certificate, error) {
	privateKey, certificate, caCerts, err := pkcs12.DecodeChain(pfxData, password)
	if err != nil {
		return tls.Certificate{}, err
	}

	cert := tls.Certificate{
		Certificate: [][]byte{certificate.Raw},
		PrivateKey:  privateKey,
		Leaf:        certificate,
	}
	for _, ca := range caCerts {
		cert.Certificate = append(cert.Certificate, ca.Raw)
	}

	return cert, nil
}
