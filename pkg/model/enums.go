package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownEnumValue = errors.New("unknown enum value")

// Enum values accept case-insensitive names or integer ordinals on input and
// always serialize as names.
func parseEnumName(names []string, value string) (int, error) {
	for index, name := range names {
		if strings.EqualFold(name, value) {
			return index, nil
		}
	}

	if ordinal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && ordinal >= 0 && ordinal < len(names) {
		return ordinal, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownEnumValue, value)
}

func unmarshalEnum(names []string, data []byte) (int, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return parseEnumName(names, name)
	}

	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err == nil {
		if ordinal < 0 || ordinal >= len(names) {
			return 0, fmt.Errorf("%w: %d", ErrUnknownEnumValue, ordinal)
		}

		return ordinal, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownEnumValue, string(data))
}

type RoastLevel int

const (
	RoastLight RoastLevel = iota
	RoastMediumLight
	RoastMedium
	RoastMediumDark
	RoastDark
)

var roastLevelNames = []string{"Light", "MediumLight", "Medium", "MediumDark", "Dark"}

func ParseRoastLevel(value string) (RoastLevel, error) {
	ordinal, err := parseEnumName(roastLevelNames, value)

	return RoastLevel(ordinal), err
}

func (r RoastLevel) Valid() bool {
	return r >= 0 && int(r) < len(roastLevelNames)
}

func (r RoastLevel) String() string {
	if !r.Valid() {
		return fmt.Sprintf("RoastLevel(%d)", int(r))
	}

	return roastLevelNames[r]
}

func (r RoastLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RoastLevel) UnmarshalJSON(data []byte) error {
	ordinal, err := unmarshalEnum(roastLevelNames, data)
	if err != nil {
		return fmt.Errorf("roast level: %w", err)
	}

	*r = RoastLevel(ordinal)

	return nil
}

type BrewMethod int

const (
	MethodEspresso BrewMethod = iota
	MethodFrenchPress
	MethodPourOver
	MethodDrip
	MethodAeroPress
	MethodColdBrew
)

var brewMethodNames = []string{"Espresso", "FrenchPress", "PourOver", "Drip", "AeroPress", "ColdBrew"}

func ParseBrewMethod(value string) (BrewMethod, error) {
	ordinal, err := parseEnumName(brewMethodNames, value)

	return BrewMethod(ordinal), err
}

func (m BrewMethod) Valid() bool {
	return m >= 0 && int(m) < len(brewMethodNames)
}

func (m BrewMethod) String() string {
	if !m.Valid() {
		return fmt.Sprintf("BrewMethod(%d)", int(m))
	}

	return brewMethodNames[m]
}

func (m BrewMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *BrewMethod) UnmarshalJSON(data []byte) error {
	ordinal, err := unmarshalEnum(brewMethodNames, data)
	if err != nil {
		return fmt.Errorf("brew method: %w", err)
	}

	*m = BrewMethod(ordinal)

	return nil
}

type EquipmentType int

const (
	EquipmentEspressoMachine EquipmentType = iota
	EquipmentGrinder
	EquipmentFrenchPress
	EquipmentPourOverDripper
	EquipmentAeroPress
	EquipmentColdBrewMaker
)

var equipmentTypeNames = []string{"EspressoMachine", "Grinder", "FrenchPress", "PourOverDripper", "AeroPress", "ColdBrewMaker"}

func ParseEquipmentType(value string) (EquipmentType, error) {
	ordinal, err := parseEnumName(equipmentTypeNames, value)

	return EquipmentType(ordinal), err
}

func (e EquipmentType) Valid() bool {
	return e >= 0 && int(e) < len(equipmentTypeNames)
}

func (e EquipmentType) String() string {
	if !e.Valid() {
		return fmt.Sprintf("EquipmentType(%d)", int(e))
	}

	return equipmentTypeNames[e]
}

func (e EquipmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *EquipmentType) UnmarshalJSON(data []byte) error {
	ordinal, err := unmarshalEnum(equipmentTypeNames, data)
	if err != nil {
		return fmt.Errorf("equipment type: %w", err)
	}

	*e = EquipmentType(ordinal)

	return nil
}
