package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ProductType – immutable value object
// ---------------------------------------------------------------------------

// ProductType identifies the loan product a borrower applied for.
type ProductType struct {
	value string
}

const (
	productTypeGroup    = "GROUP"
	productTypeBusiness = "BUSINESS"
	productTypePersonal = "PERSONAL"
	productTypeItem     = "ITEM"
)

var (
	ProductTypeGroup    = ProductType{value: productTypeGroup}
	ProductTypeBusiness = ProductType{value: productTypeBusiness}
	ProductTypePersonal = ProductType{value: productTypePersonal}
	ProductTypeItem     = ProductType{value: productTypeItem}
)

var validProductTypes = map[string]ProductType{
	productTypeGroup:    ProductTypeGroup,
	productTypeBusiness: ProductTypeBusiness,
	productTypePersonal: ProductTypePersonal,
	productTypeItem:     ProductTypeItem,
}

// NewProductType creates a ProductType from a raw string.
func NewProductType(s string) (ProductType, error) {
	v, ok := validProductTypes[s]
	if !ok {
		return ProductType{}, fmt.Errorf("%w: invalid product type %q", ErrValidation, s)
	}
	return v, nil
}

// String returns the string representation of the product type.
func (p ProductType) String() string { return p.value }

// IsZero returns true if the product type has not been initialised.
func (p ProductType) IsZero() bool { return p.value == "" }

// Equal returns true when both product types carry the same value.
func (p ProductType) Equal(other ProductType) bool { return p.value == other.value }

// RequiresCollateral reports whether a loan of this product cannot activate
// without an approved collateral item.
func (p ProductType) RequiresCollateral() bool {
	return p.value == productTypePersonal
}

// UsesDuration reports whether the product prices by chosen duration in weeks.
func (p ProductType) UsesDuration() bool {
	return p.value == productTypePersonal
}
