package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isms/backend/internal/domain/shared"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCard   PaymentMethod = "CARD"
	PaymentMobile PaymentMethod = "MOBILE"
	PaymentCredit PaymentMethod = "CREDIT"
)

// IsValid checks if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile, PaymentCredit:
		return true
	}
	return false
}

// SaleType distinguishes retail from wholesale pricing
type SaleType string

const (
	SaleTypeRetail    SaleType = "RETAIL"
	SaleTypeWholesale SaleType = "WHOLESALE"
)

// IsValid checks if the sale type is a known value
func (t SaleType) IsValid() bool {
	return t == SaleTypeRetail || t == SaleTypeWholesale
}

// SaleItem is a line on a sale receipt. The unit price is a snapshot of
// the product price at the time of sale; items are immutable once the
// sale is persisted.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time
}

// TableName returns the database table name
func (SaleItem) TableName() string {
	return "sale_items"
}

// Sale is the aggregate root for a point-of-sale transaction
type Sale struct {
	shared.BaseEntity
	ReceiptNumber    string `gorm:"uniqueIndex;not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Discount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod    PaymentMethod   `gorm:"not null"`
	SaleType         SaleType        `gorm:"not null;default:'RETAIL'"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ChangeGiven      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CustomerName     *string
	CustomerPhone    *string
	IsInstallment    bool `gorm:"not null;default:false"`
	InstallmentTotal *decimal.Decimal `gorm:"type:decimal(18,2)"`
	InstallmentPaid  *decimal.Decimal `gorm:"type:decimal(18,2)"`
	InstallmentDue   *decimal.Decimal `gorm:"type:decimal(18,2)"`
	NextPaymentDate  *time.Time
	CashierID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Items            []SaleItem `gorm:"foreignKey:SaleID"`
}

// creditPaymentInterval is the fixed gap the original shop gave credit
// customers before the next installment is expected.
const creditPaymentInterval = 30 * 24 * time.Hour

// NewSale starts a sale for the given cashier. Lines are added with
// AddLine and the sale is sealed with FinalizePayment.
func NewSale(receiptNumber string, cashierID uuid.UUID, saleType SaleType) (*Sale, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if cashierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASHIER", "Cashier ID cannot be empty")
	}
	if !saleType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SALE_TYPE", "Sale type must be RETAIL or WHOLESALE")
	}

	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		ReceiptNumber: receiptNumber,
		Subtotal:      decimal.Zero,
		Discount:      decimal.Zero,
		Total:         decimal.Zero,
		SaleType:      saleType,
		AmountPaid:    decimal.Zero,
		ChangeGiven:   decimal.Zero,
		CashierID:     cashierID,
		Items:         make([]SaleItem, 0),
	}, nil
}

// AddLine appends a sale line and recalculates the subtotal.
// lineTotal = unitPrice*quantity - lineDiscount.
func (s *Sale) AddLine(productID uuid.UUID, productName string, quantity int, unitPrice, lineDiscount decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if lineDiscount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Line discount cannot be negative")
	}

	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(lineDiscount)
	item := SaleItem{
		ID:          uuid.New(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Discount:    lineDiscount,
		Total:       lineTotal,
		CreatedAt:   time.Now(),
	}
	s.Items = append(s.Items, item)
	s.recalculate()
	return &s.Items[len(s.Items)-1], nil
}

// ApplyDiscount applies an order-level discount, clamped to [0, subtotal]
func (s *Sale) ApplyDiscount(discount decimal.Decimal) {
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(s.Subtotal) {
		discount = s.Subtotal
	}
	s.Discount = discount
	s.recalculate()
}

func (s *Sale) recalculate() {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Total)
	}
	s.Subtotal = subtotal
	s.Total = subtotal.Sub(s.Discount)
	s.Touch()
}

// FinalizePayment resolves payment fields for the chosen method:
//   - CASH requires amountPaid >= total and keeps the change
//   - CREDIT requires customer name, phone and a positive down payment,
//     and opens the installment schedule
//   - CARD and MOBILE are treated as paid in full
func (s *Sale) FinalizePayment(method PaymentMethod, amountPaid decimal.Decimal, customerName, customerPhone string) error {
	if len(s.Items) == 0 {
		return shared.ErrEmptyCart
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be CASH, CARD, MOBILE or CREDIT")
	}

	s.PaymentMethod = method
	switch method {
	case PaymentCash:
		if amountPaid.LessThan(s.Total) {
			return shared.ErrInsufficientPayment
		}
		s.AmountPaid = amountPaid
		s.ChangeGiven = amountPaid.Sub(s.Total)
	case PaymentCredit:
		if customerName == "" || customerPhone == "" {
			return shared.NewDomainError("MISSING_CUSTOMER", "Customer name and phone are required for credit sales")
		}
		if !amountPaid.IsPositive() {
			return shared.NewDomainError("INVALID_DOWN_PAYMENT", "Credit sales require a positive down payment")
		}
		due := s.Total.Sub(amountPaid)
		if due.IsNegative() {
			due = decimal.Zero
		}
		next := time.Now().Add(creditPaymentInterval)
		total := s.Total
		s.AmountPaid = amountPaid
		s.CustomerName = &customerName
		s.CustomerPhone = &customerPhone
		s.IsInstallment = true
		s.InstallmentTotal = &total
		s.InstallmentPaid = &amountPaid
		s.InstallmentDue = &due
		s.NextPaymentDate = &next
	default: // CARD, MOBILE
		s.AmountPaid = s.Total
	}
	if customerName != "" && s.CustomerName == nil {
		s.CustomerName = &customerName
	}
	if customerPhone != "" && s.CustomerPhone == nil {
		s.CustomerPhone = &customerPhone
	}
	s.Touch()
	return nil
}

// OutstandingDue returns the remaining installment balance, zero for
// non-installment sales.
func (s *Sale) OutstandingDue() decimal.Decimal {
	if !s.IsInstallment || s.InstallmentDue == nil {
		return decimal.Zero
	}
	return *s.InstallmentDue
}

// IsSettled reports whether an installment sale has been fully paid
func (s *Sale) IsSettled() bool {
	return s.IsInstallment && !s.OutstandingDue().IsPositive()
}

// RecordInstallmentPayment applies a partial payment against a credit
// sale and returns the append-only ledger entry. The due amount on the
// sale is clamped at zero; the payment row keeps the signed balance so
// an overpayment stays auditable.
func (s *Sale) RecordInstallmentPayment(amount decimal.Decimal, notes string) (*InstallmentPayment, error) {
	if !s.IsInstallment || s.InstallmentTotal == nil {
		return nil, shared.NewDomainError("NOT_INSTALLMENT", "Sale is not an installment sale")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be positive")
	}
	if s.IsSettled() {
		return nil, shared.NewDomainError("ALREADY_SETTLED", "Installment sale is already fully paid")
	}

	newPaid := amount
	if s.InstallmentPaid != nil {
		newPaid = s.InstallmentPaid.Add(amount)
	}
	balance := s.InstallmentTotal.Sub(newPaid)

	due := balance
	if due.IsNegative() {
		due = decimal.Zero
	}
	s.InstallmentPaid = &newPaid
	s.InstallmentDue = &due
	s.AmountPaid = s.AmountPaid.Add(amount)
	s.Touch()

	payment := NewInstallmentPayment(s.ID, s.Total, amount, balance, notes)
	return payment, nil
}

// TableName returns the database table name
func (Sale) TableName() string {
	return "sales"
}
