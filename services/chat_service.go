// services/chat_service.go
package services

import (
	"quickbite/entity"
	"quickbite/repository"

	"gorm.io/gorm"
)

type ChatService struct {
	repo      *repository.ChatRepository
	orderRepo *repository.OrderRepository
	storeRepo *repository.StoreRepository
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		repo:      repository.NewChatRepository(db),
		orderRepo: repository.NewOrderRepository(db),
		storeRepo: repository.NewStoreRepository(db),
	}
}

func (s *ChatService) GetRoomByID(roomID uint) (*entity.ChatRoom, error) {
	return s.repo.GetRoom(roomID)
}

func (s *ChatService) GetRoomsByUser(userID uint) ([]entity.ChatRoom, error) {
	return s.repo.FindRoomsByUser(userID)
}

// CanAccessRoom: the order's student, the store owner, or an admin.
func (s *ChatService) CanAccessRoom(userID uint, role string, orderID uint) (bool, error) {
	if role == entity.RoleAdmin {
		return true, nil
	}
	o, err := s.orderRepo.Get(orderID)
	if err != nil {
		return false, err
	}
	if o.StudentID == userID {
		return true, nil
	}
	return s.storeRepo.IsOwnedBy(o.StoreID, userID)
}

func (s *ChatService) GetMessages(roomID, userID uint, role string, sinceID uint) ([]entity.Message, error) {
	room, err := s.repo.GetRoom(roomID)
	if err != nil {
		return nil, ErrNotFound
	}
	ok, err := s.CanAccessRoom(userID, role, room.OrderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.repo.FindMessagesByRoom(roomID, sinceID)
}

func (s *ChatService) SendMessage(roomID, userID uint, role string, body string) (*entity.Message, error) {
	room, err := s.repo.GetRoom(roomID)
	if err != nil {
		return nil, ErrNotFound
	}
	ok, err := s.CanAccessRoom(userID, role, room.OrderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	msg := &entity.Message{
		Body:     body,
		SenderID: userID,
		RoomID:   roomID,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
