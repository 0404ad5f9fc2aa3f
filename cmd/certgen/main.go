// Command certgen generates a self signed certificate pair for serving the
// rating server over TLS on a local network.
package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"math/big"
	"net"
	"os"
	"time"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var ipFlag string
	var certFile string
	var keyFile string
	flag.StringVar(&ipFlag, "ip", "", "server ip to put into the certificate")
	flag.StringVar(&certFile, "cert", "cert.pem", "certificate output file")
	flag.StringVar(&keyFile, "key", "key.pem", "private key output file")
	flag.Parse()

	if exists(certFile) || exists(keyFile) {
		return errors.New("cert exists")
	}

	ips := []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}
	if ipFlag != "" {
		ip := net.ParseIP(ipFlag)
		if ip == nil {
			return errors.New("bad ip: " + ipFlag)
		}
		ips = []net.IP{ip}
	}

	ca := &x509.Certificate{
		SerialNumber:          randomSerial(),
		Subject:               subject(),
		NotBefore:             time.Now(),
		NotAfter:              time.Now().AddDate(10, 0, 0),
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	caKey, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		return err
	}
	_, err = x509.CreateCertificate(rand.Reader, ca, ca, &caKey.PublicKey, caKey)
	if err != nil {
		return err
	}

	cert := &x509.Certificate{
		SerialNumber: randomSerial(),
		Subject:      subject(),
		IPAddresses:  ips,
		NotBefore:    time.Now(),
		NotAfter:     time.Now().AddDate(10, 0, 0),
		SubjectKeyId: []byte{1, 2, 3, 4, 6},
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	certKey, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		return err
	}
	certBytes, err := x509.CreateCertificate(rand.Reader, cert, ca, &certKey.PublicKey, caKey)
	if err != nil {
		return err
	}

	certPEM, err := encodePEM("CERTIFICATE", certBytes)
	if err != nil {
		return err
	}
	keyPEM, err := encodePEM("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(certKey))
	if err != nil {
		return err
	}

	if err := os.WriteFile(certFile, certPEM, 0o600); err != nil {
		return err
	}
	return os.WriteFile(keyFile, keyPEM, 0o600)
}

func subject() pkix.Name {
	return pkix.Name{
		Organization: []string{"multielo"},
		Country:      []string{"RU"},
	}
}

func encodePEM(blockType string, der []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pem.Encode(&buf, &pem.Block{
		Type:  blockType,
		Bytes: der,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func randomSerial() *big.Int {
	i, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		panic(err)
	}
	return i
}
