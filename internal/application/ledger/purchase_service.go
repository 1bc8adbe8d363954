package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safo-124/high-purchase-sub007/internal/domain/ledger"
	"github.com/safo-124/high-purchase-sub007/internal/domain/partner"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared"
	"github.com/safo-124/high-purchase-sub007/internal/domain/shared/valueobject"
)

// PolicyProvider resolves the tenant's interest policy for non-cash purchases
type PolicyProvider interface {
	PolicyFor(ctx context.Context, tenantID uuid.UUID) (*ledger.InterestPolicy, error)
}

// PurchaseService handles the purchase obligation lifecycle
type PurchaseService struct {
	purchaseRepo ledger.PurchaseRepository
	paymentRepo  ledger.PaymentRepository
	customerRepo partner.CustomerRepository
	policies     PolicyProvider
	stock        shared.StockLedger
	audit        shared.AuditSink
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo ledger.PurchaseRepository,
	paymentRepo ledger.PaymentRepository,
	customerRepo partner.CustomerRepository,
	policies PolicyProvider,
	stock shared.StockLedger,
	audit shared.AuditSink,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		policies:     policies,
		stock:        stock,
		audit:        audit,
		logger:       logger,
	}
}

// CreatePurchaseItem is one product line in a purchase request
type CreatePurchaseItem struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice valueobject.Money
}

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	ShopID       uuid.UUID
	CustomerID   uuid.UUID
	PurchaseType ledger.PurchaseType
	Items        []CreatePurchaseItem
	DownPayment  valueobject.Money
	DownMethod   ledger.PaymentMethod // Method used for down payment / cash settlement
	Installments int
	TenorDays    int
}

// CreatePurchase builds and persists a purchase obligation. Stock is checked
// and decremented for every line, and the down payment (or the full cash
// settlement) is recorded as a CONFIRMED payment in the same operation.
func (s *PurchaseService) CreatePurchase(
	ctx context.Context,
	auth shared.AuthContext,
	req CreatePurchaseRequest,
) (*ledger.Purchase, error) {
	if err := auth.Require(shared.CapPurchaseCreate); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByIDForTenant(ctx, auth.TenantID, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
	}
	if customer.IsBlacklisted() && !req.PurchaseType.IsCash() {
		return nil, shared.NewDomainError("CUSTOMER_BLACKLISTED", "Blacklisted customers can only buy cash")
	}

	items := make([]ledger.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := ledger.NewLineItem(it.ProductID, it.Name, it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	// Every line must be in stock before anything is decremented
	for _, it := range req.Items {
		ok, err := s.stock.Check(ctx, req.ShopID, it.ProductID, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to check stock: %w", err)
		}
		if !ok {
			return nil, shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Product %s is out of stock", it.ProductID)
		}
	}

	var policy *ledger.InterestPolicy
	if !req.PurchaseType.IsCash() {
		policy, err = s.policies.PolicyFor(ctx, auth.TenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve interest policy: %w", err)
		}
	}

	number, err := s.purchaseRepo.GeneratePurchaseNumber(ctx, auth.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate purchase number: %w", err)
	}

	purchase, err := ledger.NewPurchase(ledger.NewPurchaseInput{
		TenantID:       auth.TenantID,
		ShopID:         req.ShopID,
		PurchaseNumber: number,
		CustomerID:     req.CustomerID,
		PurchaseType:   req.PurchaseType,
		Items:          items,
		DownPayment:    req.DownPayment,
		Installments:   req.Installments,
		TenorDays:      req.TenorDays,
		Policy:         policy,
	})
	if err != nil {
		return nil, err
	}
	purchase.SetCreatedBy(auth.UserID)

	for _, it := range req.Items {
		if err := s.stock.Decrement(ctx, req.ShopID, it.ProductID, it.Quantity); err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	// The settling amount at creation is itself a ledger entry
	if purchase.AmountPaid.IsPositive() {
		method := req.DownMethod
		if !method.IsValid() {
			method = ledger.PaymentMethodCash
		}
		settle, err := ledger.NewStaffPayment(
			auth.TenantID, req.ShopID, purchase.ID, req.CustomerID,
			valueobject.NewMoneyGHS(purchase.AmountPaid), method, auth.UserID,
		)
		if err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, settle); err != nil {
			return nil, fmt.Errorf("failed to save settling payment: %w", err)
		}
	}

	s.audit.Record(ctx, auth.UserID, "purchase.create", "Purchase", purchase.ID, map[string]any{
		"purchase_number": purchase.PurchaseNumber,
		"type":            string(purchase.PurchaseType),
		"total":           purchase.TotalAmount.StringFixed(2),
	})
	s.logger.Info("purchase created",
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("total", purchase.TotalAmount.StringFixed(2)))

	return purchase, nil
}

// GetPurchase loads one purchase for the caller's tenant
func (s *PurchaseService) GetPurchase(ctx context.Context, auth shared.AuthContext, id uuid.UUID) (*ledger.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, auth.TenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	if purchase == nil {
		return nil, shared.NewDomainError("PURCHASE_NOT_FOUND", "Purchase not found")
	}
	return purchase, nil
}

// ListPurchases lists purchases for the caller's tenant
func (s *PurchaseService) ListPurchases(
	ctx context.Context,
	auth shared.AuthContext,
	filter ledger.PurchaseFilter,
) ([]ledger.Purchase, int64, error) {
	purchases, err := s.purchaseRepo.FindAllForTenant(ctx, auth.TenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list purchases: %w", err)
	}
	total, err := s.purchaseRepo.CountForTenant(ctx, auth.TenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}
	return purchases, total, nil
}

// AdvanceDelivery moves a purchase's delivery one step forward
func (s *PurchaseService) AdvanceDelivery(ctx context.Context, auth shared.AuthContext, purchaseID uuid.UUID) (*ledger.Purchase, error) {
	purchase, err := s.GetPurchase(ctx, auth, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := purchase.AdvanceDelivery(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithLock(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	s.audit.Record(ctx, auth.UserID, "purchase.delivery_advanced", "Purchase", purchase.ID, map[string]any{
		"delivery_status": string(purchase.DeliveryStatus),
	})
	return purchase, nil
}

// SweepResult reports what a status sweep changed
type SweepResult struct {
	Examined int `json:"examined"`
	Updated  int `json:"updated"`
}

// MarkOverduePurchases flips ACTIVE purchases past their due date to OVERDUE.
// Run daily; idempotent.
func (s *PurchaseService) MarkOverduePurchases(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*SweepResult, error) {
	due, err := s.purchaseRepo.FindDueBefore(ctx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to find due purchases: %w", err)
	}

	result := &SweepResult{Examined: len(due)}
	for i := range due {
		p := &due[i]
		if !p.MarkOverdue(asOf) {
			continue
		}
		if err := s.purchaseRepo.SaveWithLock(ctx, p); err != nil {
			s.logger.Warn("overdue sweep: save failed, skipping",
				zap.String("purchase_number", p.PurchaseNumber), zap.Error(err))
			continue
		}
		result.Updated++
	}

	s.logger.Info("overdue sweep finished",
		zap.Int("examined", result.Examined), zap.Int("updated", result.Updated))
	return result, nil
}

// MarkDefaultedPurchases writes down OVERDUE purchases delinquent past the
// grace period. Run daily after the overdue sweep.
func (s *PurchaseService) MarkDefaultedPurchases(ctx context.Context, tenantID uuid.UUID, asOf time.Time, graceDays int) (*SweepResult, error) {
	overdue, err := s.purchaseRepo.FindOverdueSince(ctx, tenantID, asOf, graceDays)
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue purchases: %w", err)
	}

	result := &SweepResult{Examined: len(overdue)}
	for i := range overdue {
		p := &overdue[i]
		if !p.MarkDefaulted(asOf) {
			continue
		}
		if err := s.purchaseRepo.SaveWithLock(ctx, p); err != nil {
			s.logger.Warn("default sweep: save failed, skipping",
				zap.String("purchase_number", p.PurchaseNumber), zap.Error(err))
			continue
		}
		result.Updated++
	}

	s.logger.Info("default sweep finished",
		zap.Int("examined", result.Examined), zap.Int("updated", result.Updated))
	return result, nil
}
