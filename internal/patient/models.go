package patient

import (
	"strings"
	"time"

	"github.com/dentalpoint/clinic-service/internal/chart"
	"github.com/dentalpoint/clinic-service/internal/search"
)

// Patient is the clinic's record for one person, keyed by the phone-derived
// key stored in Phone.
type Patient struct {
	FirstName           string        `json:"firstName"`
	LastName            string        `json:"lastName"`
	Phone               string        `json:"phone"`
	PIN                 string        `json:"PIN"`
	Birthdate           *time.Time    `json:"birthdate"`
	Age                 string        `json:"age"`
	Sex                 string        `json:"sex"`
	Email               string        `json:"email"`
	County              string        `json:"county"`
	Town                string        `json:"town"`
	Address             string        `json:"address"`
	Allergies           []string      `json:"allergies,omitempty"`
	PreviousSurgeries   []string      `json:"previousSurgeries,omitempty"`
	ChronicDiseases     []string      `json:"chronicDiseases,omitempty"`
	FamilyHealthHistory []string      `json:"familyHealthHistory,omitempty"`
	ToothChart          []chart.Tooth `json:"toothChart,omitempty"`

	SearchKeyName         string `json:"searchKeyName"`
	SearchKeyNameReversed string `json:"searchKeyNameReversed"`
}

// Collection maps patient keys to patients, mirroring the store's keyed
// responses.
type Collection map[string]Patient

// GenerateKey derives the storage key from a patient's phone number: the
// dial code with "+" spelled as "00", a separator, and the raw subscriber
// number. The derivation is deterministic and performs no collision
// handling: two display numbers that normalize to the same key are the same
// patient as far as the store is concerned.
func GenerateKey(dialCode, localNumber string) string {
	return "00" + strings.TrimPrefix(dialCode, "+") + "-" + localNumber
}

// DeriveSearchKeys recomputes the persisted name search keys.
func (p *Patient) DeriveSearchKeys() {
	p.SearchKeyName, p.SearchKeyNameReversed = search.NameKeys(p.FirstName, p.LastName)
}

// NewMinimal returns the smallest registrable patient: name and phone key
// only, no birthdate. Booking an appointment for an unknown phone number
// registers the patient with exactly this shape.
func NewMinimal(firstName, lastName, phoneKey string) Patient {
	p := Patient{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phoneKey,
	}
	p.DeriveSearchKeys()
	return p
}
