package valueobject

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	TZS Currency = "TZS" // Tanzanian Shilling (default)
	USD Currency = "USD" // US Dollar
	KES Currency = "KES" // Kenyan Shilling
	UGX Currency = "UGX" // Ugandan Shilling
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = TZS

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case TZS:
		return "TSh"
	case USD:
		return "$"
	case KES:
		return "KSh"
	case UGX:
		return "USh"
	case EUR:
		return "€"
	case GBP:
		return "£"
	}
	return string(c)
}

// IsValid checks if the currency is one of the supported codes
func (c Currency) IsValid() bool {
	switch c {
	case TZS, USD, KES, UGX, EUR, GBP:
		return true
	}
	return false
}
