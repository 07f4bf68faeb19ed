package status

// StockLevel holds the auxiliary fields of stock-style records.
type StockLevel struct {
	Current int `json:"current"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

// Record is the part of any ERP entity that classification looks at.
// Nil auxiliary fields are absent; the record is never modified.
type Record struct {
	Stock       *StockLevel `json:"stock,omitempty"`
	DaysPastDue *int        `json:"days_past_due,omitempty"`
	RawStatus   string      `json:"raw_status"`
}

// Deriver computes a status from auxiliary fields. It returns false when the
// record does not carry the fields it needs, in which case the raw status is used.
type Deriver func(rec Record) (Canonical, bool)

// Classify returns the canonical status of rec within d.
//
// When d has a deriver and rec carries its fields, the derived status wins over
// RawStatus, which may be stale. Otherwise RawStatus is normalized, resolved
// through the domain aliases and validated against the enumeration.
func Classify(d *Domain, rec Record) (Canonical, error) {
	if d == nil {
		return "", ErrNilDomain
	}

	if d.derive != nil {
		if s, ok := d.derive(rec); ok {
			if !d.Contains(s) {
				return "", &UnknownStatusError{Domain: d.name, Status: string(s)}
			}
			return s, nil
		}
	}

	raw := normalize(rec.RawStatus)
	s := Canonical(raw)
	if d.Contains(s) {
		return s, nil
	}
	if alias, ok := d.aliases[raw]; ok {
		return alias, nil
	}
	return "", &UnknownStatusError{Domain: d.name, Status: rec.RawStatus}
}

// Present maps a canonical status to its display status within d.
func Present(d *Domain, s Canonical) (Display, error) {
	if d == nil {
		return Display{}, ErrNilDomain
	}
	return d.Present(s)
}

// Evaluate classifies rec and presents the result.
func Evaluate(d *Domain, rec Record) (Canonical, Display, error) {
	s, err := Classify(d, rec)
	if err != nil {
		return "", Display{}, err
	}
	disp, err := Present(d, s)
	if err != nil {
		return "", Display{}, err
	}
	return s, disp, nil
}
