package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContextKeyAdminEmail = "admin_email"
	ContextKeyRequestID  = "request_id"

	TableRaffles       = "raffles"
	TableTickets       = "tickets"
	TablePayments      = "payments"
	TableRaffleWinners = "raffle_winners"
	TableExchangeRates = "exchange_rates"

	// TicketInsertBatchSize bounds one INSERT when a raffle's pool is created or grown.
	TicketInsertBatchSize = 1000

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgServiceUnavailable  = "Service temporarily unavailable, retry later"
)
