package types

// Callsign uniquely identifies an aircraft within a control tower's
// jurisdiction. Aircraft identity and equality are by callsign.
type Callsign string

// AircraftClass distinguishes fixed-wing aircraft from rotorcraft. Terminals
// only accept aircraft of their own class.
type AircraftClass int

const (
	Airplane AircraftClass = iota
	Helicopter
)

func (c AircraftClass) String() string {
	switch c {
	case Airplane:
		return "AIRPLANE"
	case Helicopter:
		return "HELICOPTER"
	}
	return "UNKNOWN"
}
