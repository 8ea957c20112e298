package entity

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Store struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// JSON ของ PickupSlot (ดู PickupConfig) — จำกัดจำนวนออเดอร์ต่อช่วงเวลา
	PickupConfig string `json:"-"`

	BannerURL string `json:"bannerUrl"`
	LogoURL   string `json:"logoUrl"`
	QRURL     string `json:"qrUrl"`

	// PromptPay target the payment QR encodes
	PromptPayID string `json:"promptPayId"`

	OwnerID uint `json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Meals   []Meal   `json:"-"`
	Orders  []Order  `json:"-"`
	Ratings []Rating `json:"-"`
}

// PickupSlot is one pickup window with an order cap.
type PickupSlot struct {
	Slot  string `json:"slot"`  // "11:30-12:00"
	Limit int    `json:"limit"` // max active orders in the slot
}

func (s *Store) Slots() ([]PickupSlot, error) {
	if s.PickupConfig == "" {
		return nil, nil
	}
	var out []PickupSlot
	if err := json.Unmarshal([]byte(s.PickupConfig), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetSlots(slots []PickupSlot) error {
	if len(slots) == 0 {
		s.PickupConfig = ""
		return nil
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	s.PickupConfig = string(b)
	return nil
}
