package entity

import (
	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	Body string `json:"body"`

	SenderID uint `json:"senderId"`
	Sender   User `gorm:"foreignKey:SenderID" json:"-"`

	RoomID uint     `json:"roomId"`
	Room   ChatRoom `json:"-"` // ซ่อนเพื่อเลี่ยง loop
}
