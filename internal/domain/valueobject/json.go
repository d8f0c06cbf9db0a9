package valueobject

// Text marshalling so the wrapper value objects round-trip through JSON and
// YAML payloads as their string form.

// MarshalText implements encoding.TextMarshaler.
func (t RiskTier) MarshalText() ([]byte, error) { return []byte(t.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RiskTier) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = RiskTier{}
		return nil
	}
	v, err := NewRiskTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t LoanType) MarshalText() ([]byte, error) { return []byte(t.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *LoanType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = LoanType{}
		return nil
	}
	v, err := NewLoanType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t CollateralType) MarshalText() ([]byte, error) { return []byte(t.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CollateralType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = CollateralType{}
		return nil
	}
	v, err := NewCollateralType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s DecisionStatus) MarshalText() ([]byte, error) { return []byte(s.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DecisionStatus) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = DecisionStatus{}
		return nil
	}
	v, err := NewDecisionStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t OfferType) MarshalText() ([]byte, error) { return []byte(t.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *OfferType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "":
		*t = OfferType{}
	case offerPrimary:
		*t = OfferPrimary
	case offerSecuredAlternative:
		*t = OfferSecuredAlternative
	case offerExtendedTerm:
		*t = OfferExtendedTerm
	case offerCoApplicant:
		*t = OfferCoApplicant
	default:
		return NewValidationError("offer_type", "unknown value "+string(b))
	}
	return nil
}
