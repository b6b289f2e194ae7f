package printer

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer types accepted by New
const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeNone    = "none"
)

// ErrNotConfigured is returned by the null printer
var ErrNotConfigured = errors.New("printer: no printer configured")

// Printer sends raw ESC/POS data to a thermal printer.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
	// Type reports one of TypeUSB, TypeNetwork or TypeNone
	Type() string
}

// Config selects and addresses a printer
type Config struct {
	Type      string
	USBPath   string // e.g. /dev/usb/lp0
	Address   string // host:port, e.g. 192.168.1.100:9100
	CharWidth int    // 32 for 58mm paper, 48 for 80mm
}

// usbPrinter writes to a device file; the file is opened per job.
type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Type() string { return TypeUSB }

// networkPrinter dials a raw TCP port (usually 9100) per job.
type networkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address:      address,
		dialTimeout:  5 * time.Second,
		writeTimeout: 10 * time.Second,
	}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Type() string { return TypeNetwork }

type nullPrinter struct{}

// NewNullPrinter creates a printer for environments without hardware.
// Every job fails with ErrNotConfigured.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print([]byte) error { return ErrNotConfigured }
func (p *nullPrinter) Close() error       { return nil }
func (p *nullPrinter) IsConnected() bool  { return false }
func (p *nullPrinter) Type() string       { return TypeNone }

// New creates the Printer selected by cfg.Type
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case TypeUSB:
		if cfg.USBPath == "" {
			return nil, errors.New("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(cfg.USBPath), nil
	case TypeNetwork:
		if cfg.Address == "" {
			return nil, errors.New("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(cfg.Address), nil
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Type)
	}
}
