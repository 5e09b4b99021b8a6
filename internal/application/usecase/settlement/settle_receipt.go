package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/adapter"
	"github.com/receipt-split/backend/internal/application/usecase/coupon"
	"github.com/receipt-split/backend/internal/application/usecase/split"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// CouponAwarder stamps a user's card after a paid purchase.
type CouponAwarder interface {
	Execute(ctx context.Context, input coupon.AwardCouponInput) (*coupon.AwardCouponOutput, error)
}

// Options controls the settlement side effects.
type Options struct {
	CashEarnsCoupons bool
}

// SettleReceiptInput represents the input for settling a receipt.
type SettleReceiptInput struct {
	ReceiptID   uuid.UUID
	Policy      string
	UseDeposit  bool
	RequestedBy *uuid.UUID // Optional, set from the bearer token
}

// SettleReceiptOutput represents the output of a settlement.
type SettleReceiptOutput struct {
	Settlement *entity.Settlement
	Owed       *entity.Split
	Results    *entity.TransactionResults
	Shortages  map[uuid.UUID]decimal.Decimal
}

// SettleReceiptUseCase charges a stored receipt and persists the outcome.
type SettleReceiptUseCase struct {
	receiptRepo    adapter.ReceiptRepository
	settlementRepo adapter.SettlementRepository
	locker         adapter.UserLocker
	service        *Service
	splitter       *split.Service
	coupons        CouponAwarder
	emailService   adapter.EmailService
	observer       adapter.SettlementObserver
	options        Options
}

// NewSettleReceiptUseCase creates a new SettleReceiptUseCase instance.
// emailService and observer may be nil.
func NewSettleReceiptUseCase(
	receiptRepo adapter.ReceiptRepository,
	settlementRepo adapter.SettlementRepository,
	locker adapter.UserLocker,
	service *Service,
	splitter *split.Service,
	coupons CouponAwarder,
	emailService adapter.EmailService,
	observer adapter.SettlementObserver,
	options Options,
) *SettleReceiptUseCase {
	return &SettleReceiptUseCase{
		receiptRepo:    receiptRepo,
		settlementRepo: settlementRepo,
		locker:         locker,
		service:        service,
		splitter:       splitter,
		coupons:        coupons,
		emailService:   emailService,
		observer:       observer,
		options:        options,
	}
}

// Execute performs the settlement.
func (uc *SettleReceiptUseCase) Execute(ctx context.Context, input SettleReceiptInput) (*SettleReceiptOutput, error) {
	policy, err := entity.ParseSettlementPolicy(input.Policy)
	if err != nil {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeInvalidSettlementPolicy,
			"policy must be 'single_payer', 'best_effort', or 'all_or_nothing'",
			err,
		)
	}

	receipt, err := findReceipt(ctx, uc.receiptRepo, input.ReceiptID)
	if err != nil {
		return nil, err
	}

	locked := userIDs(receipt.Users())
	release, err := uc.locker.LockUsers(ctx, locked)
	if err != nil {
		if errors.Is(err, domainerror.ErrSettlementInProgress) {
			return nil, settlementInProgress(err)
		}
		return nil, fmt.Errorf("failed to lock users: %w", err)
	}
	defer release()

	// Balances and assignments may have changed since the first read.
	receipt, err = findReceipt(ctx, uc.receiptRepo, input.ReceiptID)
	if err != nil {
		return nil, err
	}
	if !coversUsers(locked, receipt.Users()) {
		return nil, settlementInProgress(fmt.Errorf("%w: receipt users changed while locking", domainerror.ErrSettlementInProgress))
	}

	if policy.IsMultiPayer() && !uc.splitter.ValidateAllItemsAssigned(receipt) {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeUnassignedItems,
			"every item must be assigned before splitting the payment",
			domainerror.ErrUnassignedItems,
		)
	}

	paid, err := uc.paidUsers(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}

	owed := uc.owed(receipt, policy, paid)
	if len(paid) > 0 && owed.Len() == 0 {
		return nil, alreadySettled()
	}
	results := uc.charge(receipt, policy, input.UseDeposit, owed)

	settlement := entity.NewSettlement(receipt, policy, input.UseDeposit, owed, results)
	settlement.RequestedBy = input.RequestedBy

	if err := uc.settlementRepo.Record(ctx, settlement, results.Debited()); err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	shortages := make(map[uuid.UUID]decimal.Decimal)
	for _, user := range results.Users() {
		result, _ := results.Get(user.ID)
		if result.Success {
			continue
		}
		if shortage := user.Shortage(owed.Amount(user.ID)); shortage.IsPositive() {
			shortages[user.ID] = shortage
		}
	}

	uc.awardCoupons(ctx, receipt, results)
	uc.notify(ctx, receipt, owed, results, shortages)

	if uc.observer != nil {
		uc.observer.ObserveSettlement(settlement)
	}

	slog.Info("receipt settled",
		"receipt_id", receipt.ID,
		"settlement_id", settlement.ID,
		"policy", policy,
		"use_deposit", input.UseDeposit,
		"succeeded", settlement.Succeeded(),
	)

	return &SettleReceiptOutput{
		Settlement: settlement,
		Owed:       owed,
		Results:    results,
		Shortages:  shortages,
	}, nil
}

// paidUsers returns the users an earlier settlement of the receipt already
// charged. A receipt whose earlier settlement fully succeeded is rejected.
func (uc *SettleReceiptUseCase) paidUsers(ctx context.Context, receiptID uuid.UUID) (map[uuid.UUID]bool, error) {
	earlier, err := uc.settlementRepo.ListByReceipt(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list earlier settlements: %w", err)
	}

	paid := make(map[uuid.UUID]bool)
	for _, s := range earlier {
		if s.Succeeded() {
			return nil, alreadySettled()
		}
		for _, e := range s.Entries {
			if e.Result.Success {
				paid[e.UserID] = true
			}
		}
	}
	return paid, nil
}

// owed returns what each payer still owes. Single payer owes the whole
// receipt and cannot follow a partial settlement.
func (uc *SettleReceiptUseCase) owed(receipt *entity.Receipt, policy entity.SettlementPolicy, paid map[uuid.UUID]bool) *entity.Split {
	if policy.IsMultiPayer() {
		return uc.splitter.SplitByUserAssignment(receipt).Without(paid)
	}
	owed := entity.NewSplit()
	if len(paid) == 0 {
		owed.Add(receipt.Uploader, receipt.CalculateTotal())
	}
	return owed
}

func (uc *SettleReceiptUseCase) charge(receipt *entity.Receipt, policy entity.SettlementPolicy, useDeposit bool, owed *entity.Split) *entity.TransactionResults {
	switch policy {
	case entity.SettlementBestEffort:
		return uc.service.ChargeIndependently(owed, useDeposit)
	case entity.SettlementAllOrNothing:
		return uc.service.ChargeAtomically(owed, useDeposit)
	default:
		results := entity.NewTransactionResults()
		results.Set(receipt.Uploader, uc.service.ProcessTransaction(receipt, useDeposit))
		return results
	}
}

func alreadySettled() error {
	return domainerror.NewSettlementError(
		domainerror.ErrCodeReceiptAlreadySettled,
		"receipt has already been settled",
		domainerror.ErrReceiptAlreadySettled,
	)
}

func settlementInProgress(err error) error {
	return domainerror.NewSettlementError(
		domainerror.ErrCodeSettlementInProgress,
		"another settlement is in progress for a user of this receipt",
		err,
	)
}

// coversUsers reports whether every user is among the locked IDs.
func coversUsers(locked []uuid.UUID, users []*entity.User) bool {
	held := make(map[uuid.UUID]bool, len(locked))
	for _, id := range locked {
		held[id] = true
	}
	for _, u := range users {
		if !held[u.ID] {
			return false
		}
	}
	return true
}

func findReceipt(ctx context.Context, repo adapter.ReceiptRepository, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrReceiptNotFound) {
			return nil, domainerror.ReceiptErrorFrom(err)
		}
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}
	return receipt, nil
}

// awardCoupons stamps the cards of users who paid a non-zero amount.
// Failures are logged and never undo the settlement.
func (uc *SettleReceiptUseCase) awardCoupons(ctx context.Context, receipt *entity.Receipt, results *entity.TransactionResults) {
	if receipt.StoreID == nil || uc.coupons == nil {
		return
	}

	for _, user := range results.Users() {
		result, _ := results.Get(user.ID)
		eligible := result.PaidByDeposit() || (uc.options.CashEarnsCoupons && result.PaidByCash())
		if !eligible {
			continue
		}

		_, err := uc.coupons.Execute(ctx, coupon.AwardCouponInput{
			UserID:  user.ID,
			StoreID: *receipt.StoreID,
		})
		if err != nil {
			slog.Warn("failed to award coupon",
				"user_id", user.ID,
				"store_id", *receipt.StoreID,
				"error", err,
			)
		}
	}
}

// notify queues the settlement and shortage emails for users with an address.
func (uc *SettleReceiptUseCase) notify(ctx context.Context, receipt *entity.Receipt, owed *entity.Split, results *entity.TransactionResults, shortages map[uuid.UUID]decimal.Decimal) {
	if uc.emailService == nil {
		return
	}

	for _, user := range results.Users() {
		if user.Email == "" {
			continue
		}
		result, _ := results.Get(user.ID)

		if result.Success {
			err := uc.emailService.QueueSettlementReceipt(ctx, adapter.QueueSettlementReceiptInput{
				UserEmail:   user.Email,
				UserName:    user.Name,
				ReceiptID:   receipt.ID.String(),
				AmountPaid:  result.AmountPaid.String(),
				DepositUsed: result.DepositUsed.String(),
				CashPaid:    result.CashPaid.String(),
				Balance:     user.Balance.String(),
			})
			if err != nil {
				slog.Warn("failed to queue settlement email", "user_id", user.ID, "error", err)
			}
			continue
		}

		shortage, ok := shortages[user.ID]
		if !ok {
			continue
		}
		err := uc.emailService.QueueShortageNotice(ctx, adapter.QueueShortageNoticeInput{
			UserEmail: user.Email,
			UserName:  user.Name,
			ReceiptID: receipt.ID.String(),
			Owed:      owed.Amount(user.ID).String(),
			Balance:   user.Balance.String(),
			Shortage:  shortage.String(),
		})
		if err != nil {
			slog.Warn("failed to queue shortage email", "user_id", user.ID, "error", err)
		}
	}
}

func userIDs(users []*entity.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
