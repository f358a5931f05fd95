package load

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

// EquipmentType identifies the trailer or truck class a load requires.
// Only values from the equipment catalog are valid.
type EquipmentType string

const (
	EquipmentDryVan53   EquipmentType = "53-foot van"
	EquipmentDryVan48   EquipmentType = "48-foot van"
	EquipmentBoxTruck26 EquipmentType = "26-foot box truck"
	EquipmentReefer53   EquipmentType = "53-foot reefer"
	EquipmentReefer48   EquipmentType = "48-foot reefer"
	EquipmentFlatbed53  EquipmentType = "53-foot flatbed"
	EquipmentFlatbed48  EquipmentType = "48-foot flatbed"
	EquipmentStepDeck   EquipmentType = "step deck"
	EquipmentPowerOnly  EquipmentType = "power only"
	EquipmentHotshot    EquipmentType = "hotshot"
)

// EquipmentCatalog returns the recognized equipment types.
func EquipmentCatalog() []EquipmentType {
	return []EquipmentType{
		EquipmentDryVan53,
		EquipmentDryVan48,
		EquipmentBoxTruck26,
		EquipmentReefer53,
		EquipmentReefer48,
		EquipmentFlatbed53,
		EquipmentFlatbed48,
		EquipmentStepDeck,
		EquipmentPowerOnly,
		EquipmentHotshot,
	}
}

// Validate checks catalog membership.
func (e EquipmentType) Validate() error {
	for _, known := range EquipmentCatalog() {
		if e == known {
			return nil
		}
	}
	return errs.NewValidationError("equipment_type",
		fmt.Errorf("%q is not in the equipment catalog", string(e)))
}

// String returns the catalog name.
func (e EquipmentType) String() string {
	return string(e)
}
