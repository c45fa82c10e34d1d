package appointment

import (
	"time"

	"github.com/dentalpoint/clinic-service/internal/search"
)

// Appointment is one scheduled visit. Phone is the derived patient key and
// only a weak reference: the appointment stays valid even if the patient
// record is edited or removed.
type Appointment struct {
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	Phone                 string    `json:"phone"`
	CabinetNumber         int       `json:"cabinetNumber"`
	Date                  time.Time `json:"date"`
	Description           string    `json:"description"`
	SearchKeyName         string    `json:"searchKeyName"`
	SearchKeyNameReversed string    `json:"searchKeyNameReversed"`
}

// Collection maps appointment keys to appointments, mirroring the store's
// keyed-object responses.
type Collection map[string]Appointment

// DeriveSearchKeys recomputes the persisted name search keys from the
// current first and last name.
func (a *Appointment) DeriveSearchKeys() {
	a.SearchKeyName, a.SearchKeyNameReversed = search.NameKeys(a.FirstName, a.LastName)
}
