// Package dashboardservice manages business logic layer of the customer dashboard.
package dashboardservice

import (
	"context"
	"time"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/rs/zerolog"
)

// CustomerRepo provides customer lookup interface needed by dashboard service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package dashboardservice
type CustomerRepo interface {
	GetCustomerByUsername(ctx context.Context, username string) (domain.Customer, error)
}

// AccountRepo provides account data access interface needed by dashboard service layer.
type AccountRepo interface {
	ListForCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}

// EntryRepo provides ledger data access interface needed by dashboard service layer.
type EntryRepo interface {
	ListByAccount(ctx context.Context, rib string, limit, offset int32) ([]domain.Entry, error)
	CountByAccount(ctx context.Context, rib string) (int64, error)
	LastCreatedAt(ctx context.Context, rib string) (time.Time, bool, error)
}

// Service facilitates dashboard service layer logic.
type Service struct {
	customerRepo CustomerRepo
	accountRepo  AccountRepo
	entryRepo    EntryRepo
}

// New returns dashboard service struct to aggregate the customer view.
func New(cr CustomerRepo, ar AccountRepo, er EntryRepo) *Service {
	return &Service{
		customerRepo: cr,
		accountRepo:  ar,
		entryRepo:    er,
	}
}

// Get aggregates a consistent multi-account summary plus one paginated
// transaction feed for the customer with the given username.
//
// When selectedRIB is empty the account with the latest activity is
// selected; ties break to the first account in enumeration order, so
// repeated calls against unchanged data return identical results. Get is
// read-only; page is zero-based.
func (s *Service) Get(ctx context.Context, username, selectedRIB string, page, size int32) (domain.DashboardView, error) {
	l := zerolog.Ctx(ctx)

	var view domain.DashboardView

	customer, err := s.customerRepo.GetCustomerByUsername(ctx, username)
	if err != nil {
		l.Info().Err(err).Send()
		return view, err
	}

	accounts, err := s.accountRepo.ListForCustomer(ctx, customer.UserID)
	if err != nil {
		return view, err
	}

	if len(accounts) == 0 {
		return view, domain.ErrNoAccounts
	}

	summaries := make([]domain.AccountSummary, 0, len(accounts))

	for _, account := range accounts {
		lastActivity, ok, err := s.entryRepo.LastCreatedAt(ctx, account.RIB)
		if err != nil {
			return view, err
		}

		if !ok {
			lastActivity = account.CreatedAt
		}

		summaries = append(summaries, domain.AccountSummary{
			RIB:            account.RIB,
			Balance:        account.Balance,
			LastActivityAt: lastActivity,
		})
	}

	selected, err := selectAccount(accounts, summaries, selectedRIB)
	if err != nil {
		l.Info().Err(err).Str("selected_rib", selectedRIB).Send()
		return view, err
	}

	entries, err := s.entryRepo.ListByAccount(ctx, selected.RIB, size, page*size)
	if err != nil {
		return view, err
	}

	total, err := s.entryRepo.CountByAccount(ctx, selected.RIB)
	if err != nil {
		return view, err
	}

	totalPages := total / int64(size)
	if total%int64(size) != 0 {
		totalPages++
	}

	view = domain.DashboardView{
		Accounts:        summaries,
		SelectedRIB:     selected.RIB,
		SelectedBalance: selected.Balance,
		Transactions:    entries,
		TotalPages:      totalPages,
		TotalEntries:    total,
	}

	return view, nil
}

// selectAccount picks the account to detail: the explicitly requested one,
// which must belong to the customer, or the one with the latest activity.
// The strict comparison keeps the first account on equal timestamps.
func selectAccount(accounts []domain.Account, summaries []domain.AccountSummary, selectedRIB string) (domain.Account, error) {
	if selectedRIB != "" {
		for _, account := range accounts {
			if account.RIB == selectedRIB {
				return account, nil
			}
		}

		return domain.Account{}, domain.ErrInvalidAccountReference
	}

	selected := 0
	for i := 1; i < len(summaries); i++ {
		if summaries[i].LastActivityAt.After(summaries[selected].LastActivityAt) {
			selected = i
		}
	}

	return accounts[selected], nil
}
