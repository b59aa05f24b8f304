package parx

// TypeTag enumerates the payload variants ParXChange accepts. The Java
// source uses the runtime Class<T> object as part of the map key; Go has no
// equivalent reflection-free mechanism that stays type-safe, so per the
// kernel's design notes this is re-architected as an explicit closed tag
// enum dispatched on with a switch, replacing reflection outright.
type TypeTag int

const (
	TypeDouble TypeTag = iota
	TypeInt
	TypeString
	TypeBool
	TypeDate
)

func (t TypeTag) String() string {
	switch t {
	case TypeDouble:
		return "Double"
	case TypeInt:
		return "Integer"
	case TypeString:
		return "String"
	case TypeBool:
		return "Boolean"
	case TypeDate:
		return "Date"
	default:
		return "Unknown"
	}
}

// isNumeric reports whether a TypeTag stores a numeric payload, i.e.
// requires a ScientificUnit and is eligible for the Double/Integer fallback.
func (t TypeTag) isNumeric() bool {
	return t == TypeDouble || t == TypeInt
}
