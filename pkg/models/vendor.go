package models

import "time"

// RoleVendor is the only account role this client serves.
const RoleVendor = "vendor"

// Vendor is the authenticated seller account record returned by the API.
type Vendor struct {
	ID                  string           `json:"_id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone,omitempty"`
	Role                string           `json:"role"`
	EmailVerified       bool             `json:"emailVerified"`
	BusinessVerified    bool             `json:"businessVerified"`
	IsActive            bool             `json:"isActive"`
	ProfilePicture      string           `json:"profilePicture,omitempty"`
	GhanaCard           string           `json:"ghanaCard,omitempty"`
	BusinessCertificate string           `json:"businessCertificate,omitempty"`
	BusinessProfile     *BusinessProfile `json:"businessProfile,omitempty"`
	RejectionReason     string           `json:"rejectionReason,omitempty"`
	CreatedAt           time.Time        `json:"createdAt,omitempty"`
	UpdatedAt           time.Time        `json:"updatedAt,omitempty"`
}

// BusinessProfile is the business record owned 1:1 by a vendor.
type BusinessProfile struct {
	BusinessName        string `json:"businessName"`
	BusinessAddress     string `json:"businessAddress"`
	BusinessPhone       string `json:"businessPhone"`
	BusinessCategory    string `json:"businessCategory,omitempty"`
	BusinessDescription string `json:"businessDescription,omitempty"`
	TaxID               string `json:"taxId,omitempty"`
	BankAccount         string `json:"bankAccount,omitempty"`
}

// VendorPatch carries partial vendor fields for shallow merging into a
// session snapshot after profile mutations. Nil fields are left untouched.
type VendorPatch struct {
	Name                *string          `json:"name,omitempty"`
	Email               *string          `json:"email,omitempty"`
	Phone               *string          `json:"phone,omitempty"`
	EmailVerified       *bool            `json:"emailVerified,omitempty"`
	BusinessVerified    *bool            `json:"businessVerified,omitempty"`
	IsActive            *bool            `json:"isActive,omitempty"`
	ProfilePicture      *string          `json:"profilePicture,omitempty"`
	GhanaCard           *string          `json:"ghanaCard,omitempty"`
	BusinessCertificate *string          `json:"businessCertificate,omitempty"`
	BusinessProfile     *BusinessProfile `json:"businessProfile,omitempty"`
	RejectionReason     *string          `json:"rejectionReason,omitempty"`
}

// Apply shallow-merges the patch into a copy of the vendor and returns it.
func (p VendorPatch) Apply(v Vendor) Vendor {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Email != nil {
		v.Email = *p.Email
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.EmailVerified != nil {
		v.EmailVerified = *p.EmailVerified
	}
	if p.BusinessVerified != nil {
		v.BusinessVerified = *p.BusinessVerified
	}
	if p.IsActive != nil {
		v.IsActive = *p.IsActive
	}
	if p.ProfilePicture != nil {
		v.ProfilePicture = *p.ProfilePicture
	}
	if p.GhanaCard != nil {
		v.GhanaCard = *p.GhanaCard
	}
	if p.BusinessCertificate != nil {
		v.BusinessCertificate = *p.BusinessCertificate
	}
	if p.BusinessProfile != nil {
		profile := *p.BusinessProfile
		v.BusinessProfile = &profile
	}
	if p.RejectionReason != nil {
		v.RejectionReason = *p.RejectionReason
	}
	return v
}
