package models

import (
	"fmt"
	"time"
)

// Subscription plans.
const (
	PlanFree       = "Free"
	PlanPro        = "Pro"
	PlanEnterprise = "Enterprise"
)

// DemoEmail is the identity used when a request carries none.
const DemoEmail = "john.doe@example.com"

// Subscription describes the user's plan.
type Subscription struct {
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

// Notifications holds per-channel notification flags.
type Notifications struct {
	Email   bool `json:"email"`
	Push    bool `json:"push"`
	Reports bool `json:"reports"`
}

// RiskProfile captures the investor's stated risk appetite.
type RiskProfile struct {
	InvestmentStyle string `json:"investmentStyle"`
	RiskLevel       int    `json:"riskLevel"`
}

// UserProfile is the profile record. Email is the lookup key.
type UserProfile struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Avatar        string        `json:"avatar,omitempty"`
	Subscription  Subscription  `json:"subscription"`
	Notifications Notifications `json:"notifications"`
	RiskProfile   RiskProfile   `json:"riskProfile"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// MockProfile returns the built-in demo profile for email.
func MockProfile(name, email string) *UserProfile {
	if name == "" {
		name = "John Doe"
	}
	if email == "" {
		email = DemoEmail
	}
	return &UserProfile{
		Name:          name,
		Email:         email,
		Subscription:  Subscription{Plan: PlanPro, Status: "Active"},
		Notifications: Notifications{Email: true, Push: false, Reports: true},
		RiskProfile:   RiskProfile{InvestmentStyle: "Moderate", RiskLevel: 3},
	}
}

// ProfilePatch is a partial profile update. Each non-nil group replaces the
// stored group wholesale. Email is the identity and cannot be patched.
type ProfilePatch struct {
	Name          *string        `json:"name,omitempty"`
	Avatar        *string        `json:"avatar,omitempty"`
	Subscription  *Subscription  `json:"subscription,omitempty"`
	Notifications *Notifications `json:"notifications,omitempty"`
	RiskProfile   *RiskProfile   `json:"riskProfile,omitempty"`
}

// Validate checks the name and subscription plan in the patch.
func (p *ProfilePatch) Validate() error {
	if p == nil {
		return nil
	}
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidRecord)
	}
	if p.Subscription != nil {
		switch p.Subscription.Plan {
		case PlanFree, PlanPro, PlanEnterprise:
		default:
			return fmt.Errorf("%w: unknown subscription plan %q", ErrInvalidRecord, p.Subscription.Plan)
		}
	}
	return nil
}

// Apply returns a copy of profile with the patch applied.
func (p *ProfilePatch) Apply(profile *UserProfile) *UserProfile {
	out := *profile
	if p == nil {
		return &out
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Avatar != nil {
		out.Avatar = *p.Avatar
	}
	if p.Subscription != nil {
		out.Subscription = *p.Subscription
	}
	if p.Notifications != nil {
		out.Notifications = *p.Notifications
	}
	if p.RiskProfile != nil {
		out.RiskProfile = *p.RiskProfile
	}
	return &out
}
