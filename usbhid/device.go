package usbhid

import (
	"context"
	"fmt"
	"time"

	"github.com/google/gousb"
)

const (
	// HID class requests (bRequest values)
	reqSetIdle     = 0x0A // SET_IDLE
	reqSetProtocol = 0x0B // SET_PROTOCOL

	// host-to-device (0x00) | class (0x20) | interface recipient (0x01) = 0x21
	bmRequestTypeClassOut = 0x21

	bootProtocol = 0

	usbTimeout = 1000 * time.Millisecond
)

// Device wraps a libusb handle to a boot-protocol keyboard.
type Device struct {
	ctx    *gousb.Context
	dev    *gousb.Device
	intf   *gousb.Interface
	done   func()
	ep     *gousb.InEndpoint
	serial string
}

// Open finds a keyboard by vendor and product ID (and serial, when not
// empty), claims its first interface and switches it to the boot protocol.
func Open(vendorID, productID uint16, serial string) (*Device, error) {
	ctx := gousb.NewContext()

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(vendorID) && desc.Product == gousb.ID(productID)
	})
	if err != nil && len(devs) == 0 {
		ctx.Close()
		return nil, fmt.Errorf("no keyboard found (VID:0x%04x PID:0x%04x): %w", vendorID, productID, err)
	}

	var dev *gousb.Device
	var devSerial string
	for _, d := range devs {
		s, _ := d.SerialNumber()
		if dev == nil && (serial == "" || s == serial) {
			dev, devSerial = d, s
		} else {
			d.Close()
		}
	}
	if dev == nil {
		ctx.Close()
		if serial != "" {
			return nil, fmt.Errorf("keyboard with serial %q not found", serial)
		}
		return nil, fmt.Errorf("no keyboard found (VID:0x%04x PID:0x%04x)", vendorID, productID)
	}

	dev.SetAutoDetach(true)
	dev.ControlTimeout = usbTimeout

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claim interface: %w", err)
	}

	d := &Device{ctx: ctx, dev: dev, intf: intf, done: done, serial: devSerial}

	epNum, err := interruptIn(intf)
	if err != nil {
		d.Close()
		return nil, err
	}
	if d.ep, err = intf.InEndpoint(epNum); err != nil {
		d.Close()
		return nil, fmt.Errorf("open endpoint %d: %w", epNum, err)
	}

	ifNum := uint16(intf.Setting.Number)
	if err := d.controlTransfer(reqSetProtocol, bootProtocol, ifNum); err != nil {
		d.Close()
		return nil, fmt.Errorf("SET_PROTOCOL failed: %w", err)
	}
	// Only report on change; some keyboards stall SET_IDLE, which is harmless.
	_ = d.controlTransfer(reqSetIdle, 0, ifNum)

	return d, nil
}

func interruptIn(intf *gousb.Interface) (int, error) {
	for _, ep := range intf.Setting.Endpoints {
		if ep.Direction == gousb.EndpointDirectionIn && ep.TransferType == gousb.TransferTypeInterrupt {
			return ep.Number, nil
		}
	}
	return 0, fmt.Errorf("interface %d has no interrupt IN endpoint", intf.Setting.Number)
}

// Serial returns the serial number of the opened device.
func (d *Device) Serial() string {
	return d.serial
}

// ReadReport blocks until the keyboard sends an input report or ctx is done.
func (d *Device) ReadReport(ctx context.Context) ([]byte, error) {
	buf := make([]byte, d.ep.Desc.MaxPacketSize)
	n, err := d.ep.ReadContext(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return buf[:n], nil
}

// Close releases the interface and USB resources.
func (d *Device) Close() {
	if d.done != nil {
		d.done()
		d.done = nil
	}
	d.dev.Close()
	d.ctx.Close()
}

// controlTransfer sends a class control transfer to the keyboard interface.
func (d *Device) controlTransfer(bRequest uint8, wValue uint16, wIndex uint16) error {
	_, err := d.dev.Control(bmRequestTypeClassOut, bRequest, wValue, wIndex, []byte{})
	if err != nil {
		return fmt.Errorf("control transfer (req=%d wValue=%d wIndex=%d): %w", bRequest, wValue, wIndex, err)
	}
	return nil
}
