package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductProfit is one row of the per-product profit breakdown
type ProductProfit struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
}

// ExpenseCategoryTotal is one row of the expense category breakdown
type ExpenseCategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ReturnBreakdownEntry is one row of the return loss/profit breakdown
type ReturnBreakdownEntry struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// ProfitLossResponse is the aggregate profit and loss statement for a
// period
type ProfitLossResponse struct {
	Period    string     `json:"period"`
	StartDate *time.Time `json:"startDate,omitempty"`

	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	ProductBreakdown []ProductProfit `json:"productBreakdown"`

	TotalPurchaseCost decimal.Decimal `json:"totalPurchaseCost"`

	TotalExpenses    decimal.Decimal        `json:"totalExpenses"`
	ExpenseBreakdown []ExpenseCategoryTotal `json:"expenseBreakdown"`

	RefundsGiven            decimal.Decimal        `json:"refundsGiven"`
	RepairCosts             decimal.Decimal        `json:"repairCosts"`
	StoreCredits            decimal.Decimal        `json:"storeCredits"`
	BusinessPaidDifferences decimal.Decimal        `json:"businessPaidDifferences"`
	TopUpReceived           decimal.Decimal        `json:"topUpReceived"`
	TotalReturnLoss         decimal.Decimal        `json:"totalReturnLoss"`
	TotalReturnProfit       decimal.Decimal        `json:"totalReturnProfit"`
	ReturnBreakdown         []ReturnBreakdownEntry `json:"returnBreakdown"`

	NetProfit decimal.Decimal `json:"netProfit"`
}

// DailySales is one day of the sales report series
type DailySales struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
	Discount  decimal.Decimal `json:"discount"`
	ItemsSold int             `json:"itemsSold"`
}

// SalesReportResponse summarises sales over a period
type SalesReportResponse struct {
	Period        string          `json:"period"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	ItemsSold     int             `json:"itemsSold"`
	SaleCount     int             `json:"saleCount"`
	Daily         []DailySales    `json:"daily"`
}

// ReturnsReportResponse summarises returns over a period
type ReturnsReportResponse struct {
	Period       string          `json:"period"`
	ItemCount    int             `json:"itemCount"`
	TotalRefunds decimal.Decimal `json:"totalRefunds"`
	FaultyLoss   decimal.Decimal `json:"faultyLoss"`
}

// ProductValuation is one row of the inventory valuation report
type ProductValuation struct {
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	StockQuantity   int             `json:"stockQuantity"`
	RetailValue     decimal.Decimal `json:"retailValue"`
	CostValue       decimal.Decimal `json:"costValue"`
	PotentialProfit decimal.Decimal `json:"potentialProfit"`
}

// InventoryReportResponse values the stock on hand
type InventoryReportResponse struct {
	Products             []ProductValuation `json:"products"`
	TotalRetailValue     decimal.Decimal    `json:"totalRetailValue"`
	TotalCostValue       decimal.Decimal    `json:"totalCostValue"`
	TotalPotentialProfit decimal.Decimal    `json:"totalPotentialProfit"`
}

// ProductMovement is one fast or slow mover on the dashboard
type ProductMovement struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	QuantitySold int    `json:"quantitySold"`
}

// DashboardResponse is the landing page summary
type DashboardResponse struct {
	ActiveProducts int               `json:"activeProducts"`
	LowStockCount  int               `json:"lowStockCount"`
	InventoryValue decimal.Decimal   `json:"inventoryValue"`
	TodayRevenue   decimal.Decimal   `json:"todayRevenue"`
	TodayProfit    decimal.Decimal   `json:"todayProfit"`
	FastMovers     []ProductMovement `json:"fastMovers"`
	SlowMovers     []ProductMovement `json:"slowMovers"`
}
