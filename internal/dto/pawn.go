package dto

import (
	"time"

	"github.com/goldloans/pawnshop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostPawnEventRequest describes one pawn-shop business event to be expanded
// into a balanced voucher by the posting service.
type PostPawnEventRequest struct {
	EventType domain.PawnEventType `json:"eventType" binding:"required,oneof=LOAN_DISBURSAL INTEREST_RECEIPT REDEMPTION FORFEITURE AUCTION_SALE"`
	PledgeNo  string               `json:"pledgeNo" binding:"required"`
	EventDate time.Time            `json:"eventDate" binding:"required"`
	Narration string               `json:"narration"`

	// Principal is the pledge loan amount affected by the event.
	Principal decimal.Decimal `json:"principal" binding:"required"`
	// Interest applies to INTEREST_RECEIPT and REDEMPTION.
	Interest decimal.Decimal `json:"interest"`
	// SalePrice applies to AUCTION_SALE only.
	SalePrice decimal.Decimal `json:"salePrice"`
}
