package storage

import (
	"context"
	"errors"
	"log"

	"quickmatch/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// waitingPoolKey — Redis set з RoomID усіх кімнат у статусі "waiting".
// SPOP дає рівномірну випадкову вибірку з пулу.
const waitingPoolKey = "waiting_rooms"

// ErrRoomNotFound повертається, коли RoomID не знайдено в PostgreSQL.
var ErrRoomNotFound = errors.New("storage: room not found")

type Storage interface {
	CreateRoom() (*models.Room, error)
	ClaimWaitingRoom() (*models.Room, error)
	ReleaseRoom(roomID string) error
	GetRoomByID(roomID string) (*models.Room, error)
	CountWaitingRooms() (int64, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateRoom створює кімнату зі статусом "waiting" у PostgreSQL
// та додає її до пулу очікування в Redis.
func (s *Service) CreateRoom() (*models.Room, error) {
	room := &models.Room{Status: models.StatusWaiting}

	if err := s.DB.Create(room).Error; err != nil {
		log.Printf("ERROR: Failed to create room: %v", err)
		return nil, err
	}

	if err := s.Redis.SAdd(s.Ctx, waitingPoolKey, room.RoomID).Err(); err != nil {
		log.Printf("ERROR: Failed to add room %s to waiting pool: %v", room.RoomID, err)
		return nil, err
	}

	return room, nil
}

// ClaimWaitingRoom атомарно забирає випадкову кімнату з пулу очікування та
// переводить її в статус "chatting". Повертає (nil, nil), якщо пул порожній.
//
// SPOP видаляє елемент із множини атомарно, тому два конкурентні матчери не
// можуть отримати той самий RoomID. Умовний UPDATE зі статусом-фільтром —
// другий рівень захисту: застарілий запис пулу пропускається, і вибірка
// повторюється.
func (s *Service) ClaimWaitingRoom() (*models.Room, error) {
	for {
		roomID, err := s.Redis.SPop(s.Ctx, waitingPoolKey).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil // пул порожній
		}
		if err != nil {
			return nil, err
		}

		res := s.DB.Model(&models.Room{}).
			Where("room_id = ? AND status = ?", roomID, models.StatusWaiting).
			Update("status", models.StatusChatting)
		if res.Error != nil {
			log.Printf("ERROR: Failed to claim room %s: %v", roomID, res.Error)
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Кімната вже не "waiting" — застарілий запис пулу.
			log.Printf("WARN: Stale waiting pool entry for room %s, skipping", roomID)
			continue
		}

		return s.GetRoomByID(roomID)
	}
}

// ReleaseRoom повертає кімнату в статус "waiting" та в пул очікування.
func (s *Service) ReleaseRoom(roomID string) error {
	res := s.DB.Model(&models.Room{}).
		Where("room_id = ?", roomID).
		Update("status", models.StatusWaiting)
	if res.Error != nil {
		log.Printf("ERROR: Failed to release room %s: %v", roomID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}

	if err := s.Redis.SAdd(s.Ctx, waitingPoolKey, roomID).Err(); err != nil {
		log.Printf("ERROR: Failed to return room %s to waiting pool: %v", roomID, err)
		return err
	}

	return nil
}

func (s *Service) GetRoomByID(roomID string) (*models.Room, error) {
	var room models.Room

	err := s.DB.Where("room_id = ?", roomID).First(&room).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// CountWaitingRooms повертає розмір пулу очікування.
func (s *Service) CountWaitingRooms() (int64, error) {
	return s.Redis.SCard(s.Ctx, waitingPoolKey).Result()
}

// Close закриває спільні з'єднання. Викликається один раз під час
// зупинки процесу.
func (s *Service) Close() error {
	if err := s.Redis.Close(); err != nil {
		return err
	}

	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
