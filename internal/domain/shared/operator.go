package shared

import "github.com/google/uuid"

// OperatorContext identifies the company and the acting user for an
// operation. It is supplied by the caller (session layer) and threaded
// explicitly through every application operation; operations must reject a
// context without a company.
type OperatorContext struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
}

// NewOperatorContext creates an operator context
func NewOperatorContext(companyID, userID uuid.UUID) OperatorContext {
	return OperatorContext{CompanyID: companyID, UserID: userID}
}

// Validate checks that the context carries a company
func (o OperatorContext) Validate() error {
	if o.CompanyID == uuid.Nil {
		return ErrNoCompanyContext
	}
	return nil
}
