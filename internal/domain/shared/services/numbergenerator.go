package services

// PaymentNumberGenerator issues public payment references. Implementations
// must be unique across processes sharing one database.
type PaymentNumberGenerator interface {
	Generate(prefix string) string
}
