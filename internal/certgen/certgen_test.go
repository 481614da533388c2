package certgen

import (
	"crypto/ecdsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerateSelfSigned(t *testing.T) {
	certPEM, keyPEM, err := GenerateSelfSigned([]string{"localhost", "127.0.0.1"}, 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateSelfSigned error: %v", err)
	}

	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		t.Fatal("certificate is not a CERTIFICATE PEM block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("parse cert: %v", err)
	}
	if cert.Subject.CommonName != "localhost" {
		t.Errorf("CN = %q, want localhost", cert.Subject.CommonName)
	}
	if len(cert.DNSNames) != 1 || cert.DNSNames[0] != "localhost" {
		t.Errorf("DNSNames = %v", cert.DNSNames)
	}
	if len(cert.IPAddresses) != 1 || !cert.IPAddresses[0].Equal(net.ParseIP("127.0.0.1")) {
		t.Errorf("IPAddresses = %v", cert.IPAddresses)
	}
	if len(cert.ExtKeyUsage) != 1 || cert.ExtKeyUsage[0] != x509.ExtKeyUsageServerAuth {
		t.Errorf("ExtKeyUsage = %v", cert.ExtKeyUsage)
	}
	if _, ok := cert.PublicKey.(*ecdsa.PublicKey); !ok {
		t.Errorf("public key is %T, want ECDSA", cert.PublicKey)
	}
	if d := time.Until(cert.NotAfter); d < 23*time.Hour || d > 25*time.Hour {
		t.Errorf("NotAfter %v not about a day away", cert.NotAfter)
	}

	pool := x509.NewCertPool()
	pool.AddCert(cert)
	if _, err := cert.Verify(x509.VerifyOptions{DNSName: "localhost", Roots: pool}); err != nil {
		t.Errorf("self-signed cert does not verify against itself: %v", err)
	}

	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		t.Errorf("cert and key do not form a pair: %v", err)
	}
}

func TestGenerateSelfSigned_NoHosts(t *testing.T) {
	if _, _, err := GenerateSelfSigned(nil, time.Hour); err == nil {
		t.Fatal("expected error without hosts")
	}
}

func TestWriteAndLoad(t *testing.T) {
	certPEM, keyPEM, err := GenerateSelfSigned([]string{"studio.local"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "certs")
	certPath, keyPath, err := WriteFiles(dir, certPEM, keyPEM)
	if err != nil {
		t.Fatalf("WriteFiles error: %v", err)
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("key mode = %v, want 0600", info.Mode().Perm())
	}

	cert, err := LoadCertificate(certPath)
	if err != nil {
		t.Fatalf("LoadCertificate error: %v", err)
	}
	if cert.Subject.CommonName != "studio.local" {
		t.Errorf("CN = %q", cert.Subject.CommonName)
	}

	if _, err := LoadCertificate(keyPath); err == nil {
		t.Error("expected error loading a key as a certificate")
	}
	if _, err := LoadCertificate(filepath.Join(dir, "missing.crt")); err == nil {
		t.Error("expected error for missing file")
	}
}
