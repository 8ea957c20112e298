package repository

import (
	"quickbite/entity"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateRoom(tx *gorm.DB, room *entity.ChatRoom) error {
	return tx.Create(room).Error
}

func (r *ChatRepository) GetRoom(roomID uint) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := r.DB.First(&room, roomID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindRoomsByUser returns rooms the user participates in, either as the
// student on the order or as the store owner.
func (r *ChatRepository) FindRoomsByUser(userID uint) ([]entity.ChatRoom, error) {
	var rooms []entity.ChatRoom
	err := r.DB.Table("chat_rooms AS cr").
		Joins("JOIN orders o ON o.id = cr.order_id").
		Joins("JOIN stores s ON s.id = o.store_id").
		Where("cr.deleted_at IS NULL").
		Where("o.student_id = ? OR s.owner_id = ?", userID, userID).
		Order("cr.id DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *ChatRepository) FindMessagesByRoom(roomID uint, sinceID uint) ([]entity.Message, error) {
	db := r.DB.Where("room_id = ?", roomID)
	if sinceID > 0 {
		db = db.Where("id > ?", sinceID)
	}
	var msgs []entity.Message
	err := db.Order("id").Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) CreateMessage(m *entity.Message) error {
	return r.DB.Create(m).Error
}
