package ratelimit

import "time"

// Named policies used across the application. Unauthenticated endpoints key
// on the client IP; AI endpoints key on the authenticated user ID because a
// NATed address can be shared while a user ID cannot.
var (
	// ContactForm throttles public contact submissions.
	ContactForm = Policy{Limit: 5, Window: time.Hour}
	// Login throttles authentication attempts per address.
	Login = Policy{Limit: 10, Window: 15 * time.Minute}
	// AIGenerate budgets content-generation calls per user.
	AIGenerate = Policy{Limit: 20, Window: time.Hour}
	// AIAnalyze budgets document/contact analysis calls per user.
	AIAnalyze = Policy{Limit: 10, Window: time.Hour}
)
