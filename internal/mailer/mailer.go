package mailer

// Mailer is the outbound notification port. Delivery is best-effort: callers
// surface a failure as a soft warning and never roll back committed state.
type Mailer interface {
	// SendActivationEmail delivers the 6-digit verification code to a fresh
	// or re-requesting account.
	SendActivationEmail(toEmail, toName, code string) error
	// SendLeadConfirmation acknowledges a lead submission to the end-user.
	SendLeadConfirmation(toEmail, toName string, details LeadDetails) error
}

// LeadDetails is the slice of a lead echoed back in the confirmation mail.
type LeadDetails struct {
	Need     string
	TimeSlot string
	Phone    string
}
