package printer

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, TypeNone, p.Type())

	p, err = New(Config{Type: TypeUSB, USBPath: "/dev/usb/lp0"})
	require.NoError(t, err)
	assert.Equal(t, TypeUSB, p.Type())

	_, err = New(Config{Type: TypeUSB})
	assert.Error(t, err)

	_, err = New(Config{Type: TypeNetwork})
	assert.Error(t, err)

	_, err = New(Config{Type: "bluetooth"})
	assert.ErrorContains(t, err, "unknown printer type")
}

func TestNullPrinter(t *testing.T) {
	p := NewNullPrinter()
	assert.ErrorIs(t, p.Print([]byte("x")), ErrNotConfigured)
	assert.False(t, p.IsConnected())
	assert.NoError(t, p.Close())
}

func TestUSBPrinterWritesDeviceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	assert.True(t, p.IsConnected())
	require.NoError(t, p.Print([]byte("hola")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hola", string(got))
}

func TestUSBPrinterMissingDevice(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "missing"))
	assert.False(t, p.IsConnected())
	assert.Error(t, p.Print([]byte("x")))
}

func TestNetworkPrinterSendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print([]byte{ESC, '@'}))
	assert.Equal(t, []byte{ESC, '@'}, <-received)
}

func TestNetworkPrinterUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	p := NewNetworkPrinter(addr)
	assert.False(t, p.IsConnected())
	assert.Error(t, p.Print([]byte("x")))
}
