package models

import "time"

// Profile is the disclosable identity record behind a printed QR code.
// ID, Token and CreatedAt are immutable after creation; ScanCount is the
// only mutable field and is bumped exclusively on a successful disclosure.
type Profile struct {
	ID        string
	Token     string
	Name      string
	Email     string
	Phone     string
	Company   string
	Title     string
	Website   string
	CreatedAt time.Time
	ScanCount int64
}

// Disclosed returns the contact fields that may be released to a verified
// requester. The token is never part of a disclosure.
func (p *Profile) Disclosed() *Disclosure {
	return &Disclosure{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Company: p.Company,
		Title:   p.Title,
		Website: p.Website,
	}
}

// Disclosure is the released contact-field set. Delivered reports whether
// the delivery port accepted it; a false value is a soft failure, the scan
// is recorded either way.
type Disclosure struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Title     string
	Website   string
	Delivered bool
}
