package domain

// User represents a registered account. Email is the login key and is
// unique across the system.
//
// Password is stored and compared as plain text. This is a known-insecure
// placeholder carried over from the original system: switching to hashed
// storage would break login compatibility for existing records, so the
// change is deliberately not made here.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}
