package forms

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/kadualabs/vendorhub/pkg/rest"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// LoginInput accepts an email address or a phone number as the identifier.
type LoginInput struct {
	Identifier string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

func validateLoginInput(sl validator.StructLevel) {
	input := sl.Current().Interface().(LoginInput)
	if input.Identifier == "" {
		return
	}
	if !emailPattern.MatchString(input.Identifier) && !phonePattern.MatchString(input.Identifier) {
		sl.ReportError(input.Identifier, "email", "Identifier", "identifier", "")
	}
}

// BusinessProfileInput is the nested business block of vendor registration.
type BusinessProfileInput struct {
	BusinessName        string `json:"businessName" validate:"required,min=2,max=100"`
	BusinessAddress     string `json:"businessAddress" validate:"required,min=10,max=200"`
	BusinessPhone       string `json:"businessPhone" validate:"required,min=10,phone"`
	BusinessCategory    string `json:"businessCategory" validate:"required"`
	BusinessDescription string `json:"businessDescription,omitempty" validate:"omitempty,max=500"`
	TaxID               string `json:"taxId,omitempty"`
	BankAccount         string `json:"bankAccount,omitempty"`
}

// RegisterInput is everything the registration screen collects, including
// the documents. The Ghana Card is mandatory and its absence fails here,
// before any request is issued.
type RegisterInput struct {
	Name            string               `json:"name" validate:"required,min=2"`
	Email           string               `json:"email" validate:"required,email"`
	Phone           string               `json:"phone" validate:"required,min=10,phone"`
	Password        string               `json:"password" validate:"required,min=6,password_strength"`
	ConfirmPassword string               `json:"confirmPassword" validate:"eqfield=Password"`
	BusinessProfile BusinessProfileInput `json:"businessProfile"`

	GhanaCard           *rest.File `json:"ghanaCard"`
	BusinessCertificate *rest.File `json:"businessCertificate"`
}

func validateRegisterInput(sl validator.StructLevel) {
	input := sl.Current().Interface().(RegisterInput)
	if input.GhanaCard == nil {
		sl.ReportError(input.GhanaCard, "ghanaCard", "GhanaCard", "document_required", "")
	}
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,password_strength"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,password_strength,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

// DimensionsInput holds parcel dimensions in centimetres.
type DimensionsInput struct {
	Length float64 `json:"length" validate:"gte=0"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

// ProductInput backs both product creation and full updates.
type ProductInput struct {
	Title       string           `json:"title" validate:"required,min=3,max=100"`
	Description string           `json:"description" validate:"required,min=10,max=2000"`
	Category    string           `json:"category" validate:"required"`
	Subcategory string           `json:"subcategory,omitempty"`
	BasePrice   decimal.Decimal  `json:"basePrice"`
	SalePrice   *decimal.Decimal `json:"salePrice,omitempty"`
	Tags        []string         `json:"tags,omitempty" validate:"max=10"`
	Brand       string           `json:"brand,omitempty" validate:"omitempty,max=50"`
	Weight      *float64         `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Dimensions  *DimensionsInput `json:"dimensions,omitempty"`
	Status      string           `json:"status,omitempty" validate:"omitempty,oneof=draft published hidden"`
}

func validateProductInput(sl validator.StructLevel) {
	input := sl.Current().Interface().(ProductInput)
	if !input.BasePrice.IsPositive() {
		sl.ReportError(input.BasePrice, "basePrice", "BasePrice", "positive_price", "")
	}
	if input.SalePrice != nil {
		if input.SalePrice.IsNegative() {
			sl.ReportError(input.SalePrice, "salePrice", "SalePrice", "gte", "0")
		} else if input.SalePrice.GreaterThanOrEqual(input.BasePrice) {
			sl.ReportError(input.SalePrice, "salePrice", "SalePrice", "sale_price", "")
		}
	}
}

// VariantInput backs variant creation and updates. Stock must be a
// non-negative integer and any sale price must undercut the regular price.
type VariantInput struct {
	Size      string           `json:"size,omitempty"`
	Color     string           `json:"color,omitempty"`
	Material  string           `json:"material,omitempty"`
	SKU       string           `json:"sku,omitempty"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"`
	Stock     int              `json:"stock" validate:"gte=0"`
	IsActive  *bool            `json:"isActive,omitempty"`
}

func validateVariantInput(sl validator.StructLevel) {
	input := sl.Current().Interface().(VariantInput)
	if !input.Price.IsPositive() {
		sl.ReportError(input.Price, "price", "Price", "positive_price", "")
	}
	if input.SalePrice != nil {
		if input.SalePrice.IsNegative() {
			sl.ReportError(input.SalePrice, "salePrice", "SalePrice", "gte", "0")
		} else if input.SalePrice.GreaterThanOrEqual(input.Price) {
			sl.ReportError(input.SalePrice, "salePrice", "SalePrice", "sale_price", "")
		}
	}
}

// ProfileUpdateInput carries the optional account fields a vendor can edit.
type ProfileUpdateInput struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

// StoreContactInput is the public contact block of the store settings screen.
type StoreContactInput struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10,phone"`
	WhatsApp string `json:"whatsapp,omitempty" validate:"omitempty,phone"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
}

// StoreSettingsInput backs the store settings screen.
type StoreSettingsInput struct {
	StoreName        string            `json:"storeName" validate:"required,min=2,max=100"`
	StoreDescription string            `json:"storeDescription,omitempty" validate:"omitempty,max=500"`
	ContactDetails   StoreContactInput `json:"contactDetails"`
}
