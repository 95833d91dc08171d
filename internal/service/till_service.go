package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/internal/model"
	"go-papeleria-pos/internal/repository"
	"go-papeleria-pos/internal/ws"
)

type TillService interface {
	Open(userID uuid.UUID, req *model.OpenTillRequest) (*model.TillSession, error)
	Close(id uuid.UUID, req *model.CloseTillRequest) (*model.TillSession, error)
	GetActive(userID uuid.UUID) (*model.TillSession, error)
	GetByID(id uuid.UUID) (*model.TillSession, error)
	GetByUser(userID uuid.UUID) ([]model.TillSession, error)
	GetAll() ([]model.TillSession, error)
	GetByDate(date time.Time) ([]model.TillSession, error)
}

type tillService struct {
	db       *gorm.DB
	tillRepo repository.TillRepository
	saleRepo repository.SaleRepository
	hub      *ws.Hub
}

func NewTillService(db *gorm.DB, tillRepo repository.TillRepository, saleRepo repository.SaleRepository, hub *ws.Hub) TillService {
	return &tillService{
		db:       db,
		tillRepo: tillRepo,
		saleRepo: saleRepo,
		hub:      hub,
	}
}

// Open starts a till session. An operator may hold at most one open session
// at a time.
func (s *tillService) Open(userID uuid.UUID, req *model.OpenTillRequest) (*model.TillSession, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.OpeningFloat.IsNegative() {
		return nil, apperr.Validationf("opening float cannot be negative")
	}

	open, err := s.tillRepo.HasOpen(userID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check open sessions")
	}
	if open {
		return nil, apperr.Conflictf("you already have an open till session, close it before opening a new one")
	}

	session := &model.TillSession{
		UserID:        userID,
		OpenedAt:      time.Now(),
		OpeningFloat:  req.OpeningFloat,
		CashSales:     decimal.Zero,
		CardSales:     decimal.Zero,
		TransferSales: decimal.Zero,
		TotalSales:    decimal.Zero,
		ClosingCount:  decimal.Zero,
		Variance:      decimal.Zero,
		Closed:        false,
	}
	if err := s.tillRepo.Create(session); err != nil {
		return nil, apperr.Wrap(err, "failed to open till session")
	}
	return session, nil
}

// Close freezes the session. Sales inside [OpenedAt, now] are partitioned by
// payment method, totals and the cash variance are computed once, and the
// session becomes terminal. Sales registered after this moment never touch
// the snapshot.
func (s *tillService) Close(id uuid.UUID, req *model.CloseTillRequest) (*model.TillSession, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	session, err := s.tillRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("till session not found")
		}
		return nil, apperr.Wrap(err, "failed to load till session")
	}
	if session.Closed {
		return nil, apperr.Conflictf("this till session is already closed")
	}

	now := time.Now()
	sales, err := s.saleRepo.FindBetween(session.OpenedAt, now)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load sales for the session window")
	}

	cash, card, transfer, total := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, sale := range sales {
		switch sale.PaymentMethod {
		case model.PaymentCash:
			cash = cash.Add(sale.Total)
		case model.PaymentCard:
			card = card.Add(sale.Total)
		case model.PaymentTransfer:
			transfer = transfer.Add(sale.Total)
		}
		total = total.Add(sale.Total)
	}

	session.CashSales = cash
	session.CardSales = card
	session.TransferSales = transfer
	session.TotalSales = total
	session.ClosingCount = req.ClosingCount
	session.Variance = req.ClosingCount.Sub(session.OpeningFloat.Add(cash))
	session.ClosedAt = &now
	session.Notes = req.Notes
	session.Closed = true

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.tillRepo.Save(tx, session)
	})
	if err != nil {
		return nil, apperr.Wrap(err, "failed to close till session")
	}

	if s.hub != nil {
		s.hub.Publish(map[string]interface{}{
			"type":     "till_closed",
			"session":  session.ID,
			"total":    session.TotalSales,
			"variance": session.Variance,
		})
	}
	return session, nil
}

func (s *tillService) GetActive(userID uuid.UUID) (*model.TillSession, error) {
	session, err := s.tillRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("no open till session")
		}
		return nil, apperr.Wrap(err, "failed to load till session")
	}
	return session, nil
}

func (s *tillService) GetByID(id uuid.UUID) (*model.TillSession, error) {
	session, err := s.tillRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("till session not found")
		}
		return nil, apperr.Wrap(err, "failed to load till session")
	}
	return session, nil
}

func (s *tillService) GetByUser(userID uuid.UUID) ([]model.TillSession, error) {
	return s.tillRepo.FindByUser(userID)
}

func (s *tillService) GetAll() ([]model.TillSession, error) {
	return s.tillRepo.FindAll()
}

func (s *tillService) GetByDate(date time.Time) ([]model.TillSession, error) {
	return s.tillRepo.FindByDate(date)
}
