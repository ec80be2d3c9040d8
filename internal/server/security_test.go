package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeKeyPair stores a self-signed localhost certificate in dir and returns the file paths.
func writeKeyPair(t *testing.T, dir string) (string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: "gateway.local"},
		NotBefore:    time.Now().Add(-time.Minute),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	certPath := filepath.Join(dir, "gateway.crt")
	keyPath := filepath.Join(dir, "gateway.key")
	require.NoError(t, os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}), 0o600))

	return certPath, keyPath
}

func TestNewSecurityLayer(t *testing.T) {
	tls, ok := NewSecurityLayer(true, "c.pem", "k.pem").(*TLSListener)
	require.True(t, ok)
	assert.Equal(t, "c.pem", tls.certFileName)
	assert.Equal(t, "k.pem", tls.privateKeyFileName)

	_, ok = NewSecurityLayer(false, "c.pem", "k.pem").(*PlainListener)
	assert.True(t, ok)
}

func TestTLSListener_Handshake(t *testing.T) {
	certPath, keyPath := writeKeyPair(t, t.TempDir())

	ln, err := NewTLSListener(certPath, keyPath).Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		_ = conn.(*tls.Conn).Handshake()
		_ = conn.Close()
	}()

	client, err := tls.Dial("tcp", ln.Addr().String(), &tls.Config{InsecureSkipVerify: true})
	require.NoError(t, err)
	defer client.Close()

	state := client.ConnectionState()
	assert.GreaterOrEqual(t, state.Version, uint16(tls.VersionTLS12))
	require.NotEmpty(t, state.PeerCertificates)
	assert.Equal(t, "gateway.local", state.PeerCertificates[0].Subject.CommonName)
}

func TestSecurityLayer_ListenErrors(t *testing.T) {
	certPath, keyPath := writeKeyPair(t, t.TempDir())

	tests := []struct {
		name    string
		layer   interface{ Listen(string, string) (net.Listener, error) }
		addr    string
		wantMsg string
	}{
		{
			name:    "missing certificate",
			layer:   NewTLSListener("missing.crt", "missing.key"),
			addr:    "127.0.0.1:0",
			wantMsg: "failed to load TLS certificate",
		},
		{
			name:  "tls bad address",
			layer: NewTLSListener(certPath, keyPath),
			addr:  "not-an-address",
		},
		{
			name:  "plain bad address",
			layer: NewPlainListener(),
			addr:  "not-an-address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layer.Listen("tcp", tt.addr)
			require.Error(t, err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestPlainListener_Listen(t *testing.T) {
	ln, err := NewPlainListener().Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, ok := ln.(*net.TCPListener)
	assert.True(t, ok)
}
