package scan

import (
	"fmt"
	"sync/atomic"

	"tinygo.org/x/bluetooth"
)

// BLEScanner scans for BLE advertisements on the default adapter.
type BLEScanner struct {
	adapter  *bluetooth.Adapter
	resolver *NameResolver
	running  atomic.Bool // written by Stop, read in the scan callback
}

// NewBLEScanner creates a scanner on the default adapter.
func NewBLEScanner() *BLEScanner {
	return &BLEScanner{
		adapter:  bluetooth.DefaultAdapter,
		resolver: NewNameResolver(),
	}
}

// Start enables the adapter and begins scanning in a goroutine. An enable
// failure is a permission problem and is returned synchronously; the caller
// must not expect events after that.
func (s *BLEScanner) Start(onAdv Handler, onErr ErrorHandler) error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	s.running.Store(true)
	s.resolver.Start(onAdv)

	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running.Load() {
				return
			}

			id := result.Address.String()
			name := result.LocalName()

			// Fallback: identify device by manufacturer data
			if name == "" {
				mfrs := result.ManufacturerData()
				if len(mfrs) > 0 {
					if mfrName := LookupManufacturer(mfrs[0].CompanyID); mfrName != "" {
						suffix := id[12:] // last 2 octets e.g. "EE:FF"
						name = mfrName + " " + suffix
					}
				}
				// An unnamed device can never match the beacon filter;
				// try an active name request in the background.
				s.resolver.RequestResolve(id, result.RSSI)
			}

			onAdv(Advertisement{
				ID:   id,
				Name: name,
				RSSI: result.RSSI,
			})
		})
		if err != nil && s.running.Load() {
			onErr(fmt.Errorf("ble scan: %w", err))
		}
	}()

	return nil
}

// Stop halts the scanner.
func (s *BLEScanner) Stop() {
	s.running.Store(false)
	s.resolver.Stop()
	_ = s.adapter.StopScan()
}
