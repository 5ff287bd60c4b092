package domain

// PawnEventType identifies a pawn-shop business event with a fixed ledger
// shape. The posting service expands each event into a balanced voucher over
// the seeded chart of accounts.
type PawnEventType string

const (
	LoanDisbursal   PawnEventType = "LOAN_DISBURSAL"
	InterestReceipt PawnEventType = "INTEREST_RECEIPT"
	Redemption      PawnEventType = "REDEMPTION"
	Forfeiture      PawnEventType = "FORFEITURE"
	AuctionSale     PawnEventType = "AUCTION_SALE"
)

// Well-known account codes of the seeded pawn-shop chart. The posting
// service resolves these to account ids at post time.
const (
	CodeAssetsGroup        = "1000"
	CodeCash               = "1010"
	CodeBank               = "1020"
	CodePledgeLoans        = "1100"
	CodeForfeitedInventory = "1200"
	CodeLiabilitiesGroup   = "2000"
	CodeCustomerPayables   = "2010"
	CodeEquityGroup        = "3000"
	CodeOwnerCapital       = "3010"
	CodeIncomeGroup        = "4000"
	CodeInterestIncome     = "4010"
	CodeAuctionSalesIncome = "4020"
	CodeExpenseGroup       = "5000"
	CodeOperatingExpense   = "5010"
	CodeAuctionLossExpense = "5020"
)
