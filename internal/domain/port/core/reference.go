package core

// ReferenceGenerator produces globally unique funding references.
// References are the idempotency keys correlating an initiated funding
// request with its gateway confirmation events.
type ReferenceGenerator interface {
	Next() string
}
