package entity

// BloodType is an ABO/Rh blood group.
type BloodType string

const (
	BloodONeg  BloodType = "O-"
	BloodOPos  BloodType = "O+"
	BloodANeg  BloodType = "A-"
	BloodAPos  BloodType = "A+"
	BloodBNeg  BloodType = "B-"
	BloodBPos  BloodType = "B+"
	BloodABNeg BloodType = "AB-"
	BloodABPos BloodType = "AB+"
)

// compatibleRecipients maps a donor blood type to the set of recipient types
// that can safely receive it. Standard ABO/Rh table: O- is the universal
// donor, AB+ the universal recipient.
var compatibleRecipients = map[BloodType][]BloodType{
	BloodONeg:  {BloodONeg, BloodOPos, BloodANeg, BloodAPos, BloodBNeg, BloodBPos, BloodABNeg, BloodABPos},
	BloodOPos:  {BloodOPos, BloodAPos, BloodBPos, BloodABPos},
	BloodANeg:  {BloodANeg, BloodAPos, BloodABNeg, BloodABPos},
	BloodAPos:  {BloodAPos, BloodABPos},
	BloodBNeg:  {BloodBNeg, BloodBPos, BloodABNeg, BloodABPos},
	BloodBPos:  {BloodBPos, BloodABPos},
	BloodABNeg: {BloodABNeg, BloodABPos},
	BloodABPos: {BloodABPos},
}

// String returns the string representation of the BloodType.
func (b BloodType) String() string {
	return string(b)
}

// IsValid checks if the BloodType is one of the eight ABO/Rh groups.
func (b BloodType) IsValid() bool {
	_, ok := compatibleRecipients[b]

	return ok
}

// CanDonateTo reports whether blood of type b can be given to a recipient of
// the given type. Both types must be valid; unknown types are never
// compatible.
func (b BloodType) CanDonateTo(recipient BloodType) bool {
	for _, r := range compatibleRecipients[b] {
		if r == recipient {
			return true
		}
	}

	return false
}

// ParseBloodType validates a raw string as a BloodType.
func ParseBloodType(s string) (BloodType, bool) {
	b := BloodType(s)

	return b, b.IsValid()
}
