package model

// Principal is the authenticated caller as supplied by the identity
// layer. The core only reads it.
type Principal struct {
	ID      int64 `json:"id"`
	IsAdmin bool  `json:"is_admin"`
}

// View selects which representation a read operation returns. Passing
// an explicit view keeps role decisions out of the read path itself.
type View string

const (
	// ViewAdmin includes inactive records and answer keys.
	ViewAdmin View = "admin"
	// ViewPublic is restricted to active records without answer keys.
	ViewPublic View = "public"
)
