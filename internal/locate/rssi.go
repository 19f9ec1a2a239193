package locate

import "math"

// Distance estimates range from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n)) where measuredPower is
// the calibrated RSSI at 1 meter and n the path loss exponent.
// The result is always positive for finite inputs.
func Distance(rssi, measuredPower, pathLossExp float64) float64 {
	return math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
}

// RSSIAt returns the RSSI the path loss model predicts at the given distance.
// Inverse of Distance; used by the demo scanner to synthesize advertisements.
func RSSIAt(distance, measuredPower, pathLossExp float64) float64 {
	if distance < 0.1 {
		distance = 0.1
	}
	return measuredPower - 10*pathLossExp*math.Log10(distance)
}
