package models

import (
	"time"

	"github.com/kadualabs/vendorhub/pkg/enums"
)

// DocumentRecord is the per-document review state inside a verification snapshot.
type DocumentRecord struct {
	Uploaded        bool                 `json:"uploaded"`
	URL             string               `json:"url,omitempty"`
	Status          enums.DocumentStatus `json:"status"`
	RejectionReason string               `json:"rejectionReason,omitempty"`
	Required        bool                 `json:"required,omitempty"`
}

// RequiredDocuments groups the documents the review pipeline inspects.
type RequiredDocuments struct {
	GhanaCard           DocumentRecord `json:"ghanaCard"`
	BusinessCertificate DocumentRecord `json:"businessCertificate"`
}

// VerificationStatus is the read-mostly projection of a vendor's review state.
// The server keeps stage and flags consistent; the client only reads it.
type VerificationStatus struct {
	BusinessVerified   bool                    `json:"businessVerified"`
	EmailVerified      bool                    `json:"emailVerified"`
	DocumentsSubmitted bool                    `json:"documentsSubmitted"`
	VerificationStage  enums.VerificationStage `json:"verificationStage"`
	RejectionReason    string                  `json:"rejectionReason,omitempty"`
	SubmittedAt        *time.Time              `json:"submittedAt,omitempty"`
	ReviewedAt         *time.Time              `json:"reviewedAt,omitempty"`
	RequiredDocuments  RequiredDocuments       `json:"requiredDocuments"`
}
