package aircraft

import "towersim/pkg/types"

// Characteristics describes a fixed aircraft model: its class, fuel capacity
// in litres, and either a passenger or a freight capacity (kilograms).
// Models with a non-zero passenger capacity carry passengers; all others
// carry freight.
type Characteristics struct {
	Model             string
	Class             types.AircraftClass
	FuelCapacity      float64
	PassengerCapacity int
	FreightCapacity   int
}

// AllCharacteristics is the closed set of recognised aircraft models.
var AllCharacteristics = []Characteristics{
	{Model: "AIRBUS_A320", Class: types.Airplane, FuelCapacity: 27200, PassengerCapacity: 150},
	{Model: "BOEING_787", Class: types.Airplane, FuelCapacity: 126206, PassengerCapacity: 242},
	{Model: "FOKKER_100", Class: types.Airplane, FuelCapacity: 13365, PassengerCapacity: 97},
	{Model: "BOEING_747_8F", Class: types.Airplane, FuelCapacity: 226117, FreightCapacity: 137756},
	{Model: "ROBINSON_R44", Class: types.Helicopter, FuelCapacity: 190, PassengerCapacity: 4},
	{Model: "SIKORSKY_SKYCRANE", Class: types.Helicopter, FuelCapacity: 3328, FreightCapacity: 9100},
}

// CharacteristicsOf looks up a model by its encoded identifier.
func CharacteristicsOf(model string) (Characteristics, bool) {
	for _, c := range AllCharacteristics {
		if c.Model == model {
			return c, true
		}
	}
	return Characteristics{}, false
}
