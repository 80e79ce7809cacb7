package model

type SubscriptionType string

const (
	SubscriptionFree       SubscriptionType = "FREE"
	SubscriptionNormal     SubscriptionType = "NORMAL"
	SubscriptionEnterprise SubscriptionType = "ENTERPRISE"
)

type Brand struct {
	ID               int64
	Name             string
	BusinessEmail    string
	SubscriptionType SubscriptionType
	AdminEmails      []string
}

// Recipients returns the brand's full mailing list: admin contacts, the
// business email when set, plus any extra addresses (e.g. the ops copy).
func (b *Brand) Recipients(extra ...string) []string {
	recipients := make([]string, 0, len(b.AdminEmails)+len(extra)+1)
	recipients = append(recipients, b.AdminEmails...)
	if b.BusinessEmail != "" {
		recipients = append(recipients, b.BusinessEmail)
	}
	recipients = append(recipients, extra...)
	return recipients
}
