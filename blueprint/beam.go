package blueprint

import "strconv"

// Fixed asset paths understood by Satisfactory Calculator. They must match
// the game's class names exactly.
const (
	ClassPaintedBeam = "/Game/FactoryGame/Prototype/Buildable/Beams/Build_Beam_Painted.Build_Beam_Painted_C"
	SwatchCustom     = "/Game/FactoryGame/Buildable/-Shared/Customization/Swatches/SwatchDesc_Custom.SwatchDesc_Custom_C"
	PaintFinishMatte = "/Game/FactoryGame/Buildable/-Shared/Customization/PaintFinishes/PaintFinishDesc_Matte.PaintFinishDesc_Matte_C"

	LevelPersistent = "Persistent_Level"
	beamPathPrefix  = "Persistent_Level:PersistentLevel.Build_Beam_Painted_C_"

	// NoColorSlot tells the game the color comes from the override data.
	NoColorSlot = 255
)

const (
	propLength        = "mLength"
	propColorSlot     = "mColorSlot"
	propCustomization = "mCustomizationData"
	propSwatch        = "SwatchDesc"
	propOverrideColor = "OverrideColorData"
	propPrimaryColor  = "PrimaryColor"
	propSecondary     = "SecondaryColor"
	propPaintFinish   = "PaintFinish"
)

// IdentityRotation is the unrotated quaternion (x, y, z, w).
var IdentityRotation = [4]float64{0, 0, 0, 1}

// NewPaintedBeam returns a one-unit painted beam at translation, colored c on
// both the primary and secondary slots with a matte finish.
func NewPaintedBeam(id int, translation [3]float64, c LinearColor) Object {
	return Object{
		Type:          1,
		ClassName:     ClassPaintedBeam,
		LevelName:     LevelPersistent,
		PathName:      beamPathPrefix + strconv.Itoa(id),
		NeedTransform: 1,
		Transform: Transform{
			Rotation:    IdentityRotation,
			Translation: translation,
		},
		Properties: []Property{
			{Name: propLength, Type: TypeFloat, Float: UnitSize},
			{Name: propColorSlot, Type: TypeByte, Byte: &ByteValue{Value: NoColorSlot}},
			{Name: propCustomization, Type: TypeStruct, Struct: customization(c)},
		},
	}
}

func customization(c LinearColor) *StructValue {
	primary, secondary := c, c
	return &StructValue{
		Type: "FactoryCustomizationData",
		Values: []Property{
			{Name: propSwatch, Type: TypeObject, Object: &Reference{PathName: SwatchCustom}},
			{Name: propOverrideColor, Type: TypeStruct, Struct: &StructValue{
				Type: "FactoryCustomizationColorSlot",
				Values: []Property{
					{Name: propPrimaryColor, Type: TypeStruct, Struct: &StructValue{Type: structLinearColor, Color: &primary}},
					{Name: propSecondary, Type: TypeStruct, Struct: &StructValue{Type: structLinearColor, Color: &secondary}},
					{Name: propPaintFinish, Type: TypeObject, Object: &Reference{PathName: PaintFinishMatte}},
				},
			}},
		},
	}
}
