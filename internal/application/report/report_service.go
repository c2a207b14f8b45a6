package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/isms/backend/internal/domain/catalog"
	"github.com/isms/backend/internal/domain/finance"
	"github.com/isms/backend/internal/domain/purchasing"
	"github.com/isms/backend/internal/domain/returns"
	"github.com/isms/backend/internal/domain/sales"
	"github.com/isms/backend/internal/domain/shared"
)

const moverLimit = 5

// ReportService recomputes every report from raw rows on demand. No
// running balances are kept.
type ReportService struct {
	saleRepo    sales.SaleRepository
	returnRepo  returns.ReturnRepository
	orderRepo   purchasing.PurchaseOrderRepository
	expenseRepo finance.ExpenseRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	saleRepo sales.SaleRepository,
	returnRepo returns.ReturnRepository,
	orderRepo purchasing.PurchaseOrderRepository,
	expenseRepo finance.ExpenseRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		saleRepo:    saleRepo,
		returnRepo:  returnRepo,
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// ProfitLoss builds the full profit and loss statement for a period
func (s *ReportService) ProfitLoss(ctx context.Context, period Period) (*ProfitLossResponse, error) {
	since, err := period.Start(time.Now())
	if err != nil {
		return nil, err
	}

	costs, err := s.productCosts(ctx)
	if err != nil {
		return nil, err
	}

	saleRows, err := s.saleRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	report := &ProfitLossResponse{
		Period:    string(period),
		StartDate: since,
	}
	report.TotalRevenue = decimal.Zero
	report.TotalCost = decimal.Zero

	byProduct := make(map[uuid.UUID]*ProductProfit)
	for i := range saleRows {
		for _, item := range saleRows[i].Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			revenue := item.UnitPrice.Mul(qty)
			cost := costs[item.ProductID].Mul(qty)

			report.TotalRevenue = report.TotalRevenue.Add(revenue)
			report.TotalCost = report.TotalCost.Add(cost)

			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &ProductProfit{
					ProductID:   item.ProductID.String(),
					ProductName: item.ProductName,
					Revenue:     decimal.Zero,
					Cost:        decimal.Zero,
					Profit:      decimal.Zero,
				}
				byProduct[item.ProductID] = row
			}
			row.QuantitySold += item.Quantity
			row.Revenue = row.Revenue.Add(revenue)
			row.Cost = row.Cost.Add(cost)
			row.Profit = row.Revenue.Sub(row.Cost)
		}
	}
	report.TotalProfit = report.TotalRevenue.Sub(report.TotalCost)

	report.ProductBreakdown = make([]ProductProfit, 0, len(byProduct))
	for _, row := range byProduct {
		report.ProductBreakdown = append(report.ProductBreakdown, *row)
	}
	sort.Slice(report.ProductBreakdown, func(i, j int) bool {
		return report.ProductBreakdown[i].Profit.GreaterThan(report.ProductBreakdown[j].Profit)
	})

	// Purchase spend over received orders is informational only and is
	// not netted into the bottom line.
	report.TotalPurchaseCost = decimal.Zero
	orders, err := s.orderRepo.FindReceivedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		report.TotalPurchaseCost = report.TotalPurchaseCost.Add(orders[i].TotalAmount)
	}

	report.TotalExpenses = decimal.Zero
	expenses, err := s.expenseRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string]decimal.Decimal)
	for i := range expenses {
		report.TotalExpenses = report.TotalExpenses.Add(expenses[i].Amount)
		byCategory[expenses[i].Category] = byCategory[expenses[i].Category].Add(expenses[i].Amount)
	}
	report.ExpenseBreakdown = make([]ExpenseCategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		report.ExpenseBreakdown = append(report.ExpenseBreakdown, ExpenseCategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(report.ExpenseBreakdown, func(i, j int) bool {
		return report.ExpenseBreakdown[i].Amount.GreaterThan(report.ExpenseBreakdown[j].Amount)
	})

	if err := s.applyReturnTotals(ctx, since, report); err != nil {
		return nil, err
	}

	report.NetProfit = report.TotalProfit.
		Sub(report.TotalExpenses).
		Sub(report.TotalReturnLoss).
		Add(report.TotalReturnProfit)

	return report, nil
}

// applyReturnTotals folds the return ledger into the statement. A
// business-paid replacement difference is a loss, a client-paid one a
// top-up gain.
func (s *ReportService) applyReturnTotals(ctx context.Context, since *time.Time, report *ProfitLossResponse) error {
	items, err := s.returnRepo.FindItemsSince(ctx, since)
	if err != nil {
		return err
	}

	refunds := decimal.Zero
	repairs := decimal.Zero
	storeCredits := decimal.Zero
	businessPaid := decimal.Zero
	topUp := decimal.Zero

	for i := range items {
		item := &items[i]
		refunds = refunds.Add(item.RefundAmount)
		repairs = repairs.Add(item.RepairCost)

		if item.AwardedType == returns.AwardStoreCredit {
			storeCredits = storeCredits.Add(item.AwardedAmount)
		}
		if item.PriceDifference.IsPositive() {
			if item.DifferencePaidBy == returns.PayerBusiness {
				businessPaid = businessPaid.Add(item.PriceDifference)
			} else {
				topUp = topUp.Add(item.PriceDifference)
			}
		}
	}

	report.RefundsGiven = refunds
	report.RepairCosts = repairs
	report.StoreCredits = storeCredits
	report.BusinessPaidDifferences = businessPaid
	report.TopUpReceived = topUp
	report.TotalReturnLoss = refunds.Add(repairs).Add(businessPaid)
	report.TotalReturnProfit = topUp
	report.ReturnBreakdown = []ReturnBreakdownEntry{
		{Type: "REFUND", Amount: refunds},
		{Type: "REPAIR", Amount: repairs},
		{Type: "STORE_CREDIT", Amount: storeCredits},
		{Type: "PRICE_DIFF_BUSINESS", Amount: businessPaid},
		{Type: "TOP_UP", Amount: topUp},
	}
	return nil
}

// SalesReport builds the per-day sales series for a period, optionally
// narrowed to one category or product.
func (s *ReportService) SalesReport(ctx context.Context, period Period, categoryID, productID *uuid.UUID) (*SalesReportResponse, error) {
	since, err := period.Start(time.Now())
	if err != nil {
		return nil, err
	}

	products, err := s.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	saleRows, err := s.saleRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	report := &SalesReportResponse{
		Period:        string(period),
		TotalRevenue:  decimal.Zero,
		TotalProfit:   decimal.Zero,
		TotalDiscount: decimal.Zero,
	}

	byDay := make(map[string]*DailySales)
	for i := range saleRows {
		sale := &saleRows[i]
		day := sale.CreatedAt.Format("2006-01-02")
		saleCounted := false

		for _, item := range sale.Items {
			if productID != nil && item.ProductID != *productID {
				continue
			}
			if categoryID != nil {
				product, ok := products[item.ProductID]
				if !ok || product.CategoryID != *categoryID {
					continue
				}
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			revenue := item.UnitPrice.Mul(qty)
			cost := decimal.Zero
			if product, ok := products[item.ProductID]; ok {
				cost = product.PurchaseCost.Mul(qty)
			}
			profit := revenue.Sub(cost)

			row, ok := byDay[day]
			if !ok {
				row = &DailySales{Date: day, Revenue: decimal.Zero, Profit: decimal.Zero, Discount: decimal.Zero}
				byDay[day] = row
			}
			row.Revenue = row.Revenue.Add(revenue)
			row.Profit = row.Profit.Add(profit)
			row.ItemsSold += item.Quantity

			report.TotalRevenue = report.TotalRevenue.Add(revenue)
			report.TotalProfit = report.TotalProfit.Add(profit)
			report.ItemsSold += item.Quantity

			if !saleCounted {
				// Whole-sale discount counts once per sale that
				// contributed at least one matching line
				row.Discount = row.Discount.Add(sale.Discount)
				report.TotalDiscount = report.TotalDiscount.Add(sale.Discount)
				report.SaleCount++
				saleCounted = true
			}
		}
	}

	report.Daily = make([]DailySales, 0, len(byDay))
	for _, row := range byDay {
		report.Daily = append(report.Daily, *row)
	}
	sort.Slice(report.Daily, func(i, j int) bool {
		return report.Daily[i].Date < report.Daily[j].Date
	})

	return report, nil
}

// ReturnsReport summarises refund outflows over a period
func (s *ReportService) ReturnsReport(ctx context.Context, period Period) (*ReturnsReportResponse, error) {
	since, err := period.Start(time.Now())
	if err != nil {
		return nil, err
	}

	items, err := s.returnRepo.FindItemsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	report := &ReturnsReportResponse{
		Period:       string(period),
		ItemCount:    len(items),
		TotalRefunds: decimal.Zero,
		FaultyLoss:   decimal.Zero,
	}
	for i := range items {
		item := &items[i]
		report.TotalRefunds = report.TotalRefunds.Add(item.RefundAmount)
		if item.Status == returns.ItemStatusFaulty || item.Status == returns.ItemStatusDiscarded {
			report.FaultyLoss = report.FaultyLoss.Add(item.RefundAmount)
		}
	}
	return report, nil
}

// InventoryReport values the stock on hand at retail and at cost
func (s *ReportService) InventoryReport(ctx context.Context) (*InventoryReportResponse, error) {
	products, err := s.productRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	report := &InventoryReportResponse{
		Products:             make([]ProductValuation, 0, len(products)),
		TotalRetailValue:     decimal.Zero,
		TotalCostValue:       decimal.Zero,
		TotalPotentialProfit: decimal.Zero,
	}
	for i := range products {
		product := &products[i]
		qty := decimal.NewFromInt(int64(product.StockQuantity))
		retail := product.SellingPrice.Mul(qty)
		cost := product.PurchaseCost.Mul(qty)

		report.Products = append(report.Products, ProductValuation{
			ProductID:       product.ID.String(),
			ProductName:     product.Name,
			StockQuantity:   product.StockQuantity,
			RetailValue:     retail,
			CostValue:       cost,
			PotentialProfit: retail.Sub(cost),
		})
		report.TotalRetailValue = report.TotalRetailValue.Add(retail)
		report.TotalCostValue = report.TotalCostValue.Add(cost)
	}
	report.TotalPotentialProfit = report.TotalRetailValue.Sub(report.TotalCostValue)
	return report, nil
}

// Dashboard builds the landing page summary
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	products, err := s.productRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	dashboard := &DashboardResponse{
		InventoryValue: decimal.Zero,
		TodayRevenue:   decimal.Zero,
		TodayProfit:    decimal.Zero,
	}

	costs := make(map[uuid.UUID]decimal.Decimal, len(products))
	for i := range products {
		product := &products[i]
		costs[product.ID] = product.PurchaseCost
		if !product.IsFaulty {
			dashboard.ActiveProducts++
		}
		if product.IsLowStock() {
			dashboard.LowStockCount++
		}
		qty := decimal.NewFromInt(int64(product.StockQuantity))
		dashboard.InventoryValue = dashboard.InventoryValue.Add(product.SellingPrice.Mul(qty))
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todaySales, err := s.saleRepo.FindSince(ctx, &midnight)
	if err != nil {
		return nil, err
	}
	for i := range todaySales {
		for _, item := range todaySales[i].Items {
			qty := decimal.NewFromInt(int64(item.Quantity))
			revenue := item.UnitPrice.Mul(qty)
			dashboard.TodayRevenue = dashboard.TodayRevenue.Add(revenue)
			dashboard.TodayProfit = dashboard.TodayProfit.Add(revenue.Sub(costs[item.ProductID].Mul(qty)))
		}
	}

	fast, slow, err := s.movers(ctx, products)
	if err != nil {
		return nil, err
	}
	dashboard.FastMovers = fast
	dashboard.SlowMovers = slow

	return dashboard, nil
}

// movers ranks products by quantity sold over the last thirty days.
// Products with no sales at all rank as the slowest.
func (s *ReportService) movers(ctx context.Context, products []catalog.Product) ([]ProductMovement, []ProductMovement, error) {
	since := time.Now().AddDate(0, 0, -30)
	saleRows, err := s.saleRepo.FindSince(ctx, &since)
	if err != nil {
		return nil, nil, err
	}

	sold := make(map[uuid.UUID]int)
	for i := range saleRows {
		for _, item := range saleRows[i].Items {
			sold[item.ProductID] += item.Quantity
		}
	}

	movements := make([]ProductMovement, 0, len(products))
	for i := range products {
		product := &products[i]
		if product.IsFaulty {
			continue
		}
		movements = append(movements, ProductMovement{
			ProductID:    product.ID.String(),
			ProductName:  product.Name,
			QuantitySold: sold[product.ID],
		})
	}

	sort.Slice(movements, func(i, j int) bool {
		return movements[i].QuantitySold > movements[j].QuantitySold
	})

	fast := make([]ProductMovement, 0, moverLimit)
	for _, m := range movements {
		if len(fast) == moverLimit || m.QuantitySold == 0 {
			break
		}
		fast = append(fast, m)
	}

	slow := make([]ProductMovement, 0, moverLimit)
	for i := len(movements) - 1; i >= 0 && len(slow) < moverLimit; i-- {
		slow = append(slow, movements[i])
	}

	return fast, slow, nil
}

// productCosts maps product IDs to purchase costs. Lines pointing at a
// deleted product cost zero.
func (s *ReportService) productCosts(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	products, err := s.productRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	costs := make(map[uuid.UUID]decimal.Decimal, len(products))
	for i := range products {
		costs[products[i].ID] = products[i].PurchaseCost
	}
	return costs, nil
}

func (s *ReportService) allProducts(ctx context.Context) (map[uuid.UUID]*catalog.Product, error) {
	products, err := s.productRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
