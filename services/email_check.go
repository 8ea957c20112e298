package services

import (
	"strings"

	"quickbite/entity"

	"gorm.io/gorm"
)

// EmailCheck is the result of the four-source uniqueness probe.
type EmailCheck struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
	Source    string `json:"source,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// emailInUse checks, in order: Account (login identities), User (profiles),
// MerchantApplication rows still pending or approved, ApprovedStaff staged
// credentials. First match wins. It runs against whatever handle it is given,
// so callers inside a transaction pass tx and get check+insert atomicity —
// the one flow the original repeated at every call site without it.
func emailInUse(db *gorm.DB, email string) (*EmailCheck, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	out := &EmailCheck{Email: email, Available: true}

	var cnt int64
	if err := db.Model(&entity.Account{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt > 0 {
		out.Available, out.Source, out.Reason = false, "account", "already registered"
		return out, nil
	}

	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt > 0 {
		out.Available, out.Source, out.Reason = false, "user", "already registered"
		return out, nil
	}

	if err := db.Model(&entity.MerchantApplication{}).
		Where("email = ? AND status IN ?", email, []string{entity.AppPending, entity.AppApproved}).
		Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt > 0 {
		out.Available, out.Source, out.Reason = false, "merchant_application", "a merchant application for this email is pending or approved"
		return out, nil
	}

	if err := db.Model(&entity.ApprovedStaff{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt > 0 {
		out.Available, out.Source, out.Reason = false, "approved_staff", "already registered as staff"
		return out, nil
	}

	return out, nil
}
