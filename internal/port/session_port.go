package port

// Session exposes the current authentication state. The cart subsystem only
// reads it; setting and clearing the credential is the login flow's job.
type Session interface {
	// Token returns the bearer credential and whether one is present.
	Token() (string, bool)
}
