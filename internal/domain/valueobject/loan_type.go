package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanType – immutable value object
// ---------------------------------------------------------------------------

// LoanType identifies the credit product being applied for.
type LoanType struct {
	value string
}

const (
	loanTypePersonal   = "PERSONAL"
	loanTypeMortgage   = "MORTGAGE"
	loanTypeBusiness   = "BUSINESS"
	loanTypeCreditCard = "CREDIT_CARD"
)

var (
	LoanTypePersonal   = LoanType{value: loanTypePersonal}
	LoanTypeMortgage   = LoanType{value: loanTypeMortgage}
	LoanTypeBusiness   = LoanType{value: loanTypeBusiness}
	LoanTypeCreditCard = LoanType{value: loanTypeCreditCard}
)

var validLoanTypes = map[string]LoanType{
	loanTypePersonal:   LoanTypePersonal,
	loanTypeMortgage:   LoanTypeMortgage,
	loanTypeBusiness:   LoanTypeBusiness,
	loanTypeCreditCard: LoanTypeCreditCard,
}

// NewLoanType creates a LoanType from a raw string.
func NewLoanType(s string) (LoanType, error) {
	v, ok := validLoanTypes[s]
	if !ok {
		return LoanType{}, fmt.Errorf("invalid loan type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the loan type.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// CollateralType – immutable value object
// ---------------------------------------------------------------------------

// CollateralType identifies the asset class pledged against a loan.
type CollateralType struct {
	value string
}

const (
	collateralRealEstate  = "REAL_ESTATE"
	collateralVehicle     = "VEHICLE"
	collateralCashDeposit = "CASH_DEPOSIT"
	collateralSecurities  = "SECURITIES"
	collateralEquipment   = "EQUIPMENT"
)

var (
	CollateralRealEstate  = CollateralType{value: collateralRealEstate}
	CollateralVehicle     = CollateralType{value: collateralVehicle}
	CollateralCashDeposit = CollateralType{value: collateralCashDeposit}
	CollateralSecurities  = CollateralType{value: collateralSecurities}
	CollateralEquipment   = CollateralType{value: collateralEquipment}
)

var validCollateralTypes = map[string]CollateralType{
	collateralRealEstate:  CollateralRealEstate,
	collateralVehicle:     CollateralVehicle,
	collateralCashDeposit: CollateralCashDeposit,
	collateralSecurities:  CollateralSecurities,
	collateralEquipment:   CollateralEquipment,
}

// NewCollateralType creates a CollateralType from a raw string.
func NewCollateralType(s string) (CollateralType, error) {
	v, ok := validCollateralTypes[s]
	if !ok {
		return CollateralType{}, fmt.Errorf("invalid collateral type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the collateral type.
func (t CollateralType) String() string { return t.value }

// IsZero returns true if the collateral type has not been initialised.
func (t CollateralType) IsZero() bool { return t.value == "" }

// Equal returns true when both collateral types carry the same value.
func (t CollateralType) Equal(other CollateralType) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// Categorical applicant attributes
// ---------------------------------------------------------------------------

// EmploymentStability grades how settled the applicant's employment is.
type EmploymentStability string

const (
	EmploymentStable   EmploymentStability = "stable"
	EmploymentModerate EmploymentStability = "moderate"
	EmploymentUnstable EmploymentStability = "unstable"
)

// IndustryRisk grades the risk of the applicant's employment sector.
type IndustryRisk string

const (
	IndustryRiskLow    IndustryRisk = "low"
	IndustryRiskMedium IndustryRisk = "medium"
	IndustryRiskHigh   IndustryRisk = "high"
)

// LoanPurpose is the applicant's stated use of funds.
type LoanPurpose string

const (
	PurposeDebtConsolidation LoanPurpose = "debt_consolidation"
	PurposeHomeImprovement   LoanPurpose = "home_improvement"
	PurposeBusiness          LoanPurpose = "business"
	PurposeEducation         LoanPurpose = "education"
	PurposeOther             LoanPurpose = "other"
)
