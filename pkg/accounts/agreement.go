package accounts

import "slices"

// AgreementKind is the contractual billing relationship a billing
// account was signed under. The set is closed; anything unrecognized is
// treated as AgreementUnknown.
type AgreementKind string

// String returns the string representation of an agreement kind.
func (k AgreementKind) String() string {
	return string(k)
}

const (
	// AgreementEnterprise is a direct Enterprise Agreement billing account.
	AgreementEnterprise AgreementKind = "EnterpriseAgreement"
	// AgreementPartner is a reseller Microsoft Partner Agreement billing account.
	AgreementPartner AgreementKind = "MicrosoftPartnerAgreement"
	// AgreementUnknown covers accounts with no recognized billing agreement.
	AgreementUnknown AgreementKind = "Unknown"
)

// AgreementKinds returns all defined agreement kinds.
func AgreementKinds() []AgreementKind {
	return []AgreementKind{
		AgreementEnterprise,
		AgreementPartner,
		AgreementUnknown,
	}
}

// IsValid returns true if the kind is one of the defined constants.
func (k AgreementKind) IsValid() bool {
	return slices.Contains(AgreementKinds(), k)
}

// KindOf maps a raw agreement-type string from the billing feed to an
// AgreementKind. Absent or unrecognized values map to AgreementUnknown;
// that lookup never fails.
func KindOf(raw string) AgreementKind {
	kind := AgreementKind(raw)
	if kind.IsValid() {
		return kind
	}
	return AgreementUnknown
}
