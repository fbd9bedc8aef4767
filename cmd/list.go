/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/allbin/ttymon"
	"github.com/allbin/ttymon/internal/ui"
	"github.com/allbin/ttymon/internal/ui/styles"
	"go.bug.st/serial/enumerator"
)

// runList prints the matching devices that are attached right now. The
// serial filter is not applied, so every candidate shows up.
func runList(out io.Writer, o options) error {
	if o.All {
		ports, err := enumerator.GetDetailedPortsList()
		if err != nil {
			return fmt.Errorf("failed to list ports: %w", err)
		}
		renderTable(out, ports)
		return nil
	}

	watcher, err := newWatcher(o.Watcher, slog.Default())
	if err != nil {
		return err
	}
	devices, err := ttymon.ListDevices(watcher, ttymon.Criteria{VendorPrefix: o.Vendor})
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}
	renderDevices(out, o.Vendor, devices)
	return nil
}

// renderDevices renders matching devices in simple text format
func renderDevices(out io.Writer, vendor string, devices []ttymon.Device) {
	if len(devices) == 0 {
		fmt.Fprintf(out, "No %s devices detected.\n", vendor)
		return
	}
	for _, d := range devices {
		fmt.Fprintln(out, ui.DeviceLine(vendor, d))
	}
}

// renderTable renders the USB serial ports in a styled static table format
func renderTable(out io.Writer, ports []*enumerator.PortDetails) {
	var usb []*enumerator.PortDetails
	for _, p := range ports {
		if p.IsUSB {
			usb = append(usb, p)
		}
	}
	if len(usb) == 0 {
		fmt.Fprintln(out, "No USB serial ports found")
		return
	}

	fmt.Fprintf(out, "Found %d USB serial port(s):\n\n", len(usb))

	// Define column widths
	portWidth := 15
	idWidth := 11
	serialWidth := 20
	productWidth := 30

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		portWidth, "Port",
		idWidth, "VID:PID",
		serialWidth, "Serial",
		productWidth, "Product")
	fmt.Fprintln(out, styles.HeaderStyle.Render(header))

	for _, p := range usb {
		row := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			portWidth, p.Name,
			idWidth, p.VID+":"+p.PID,
			serialWidth, p.SerialNumber,
			productWidth, p.Product)
		fmt.Fprintln(out, styles.CellStyle.Render(row))
	}
}
