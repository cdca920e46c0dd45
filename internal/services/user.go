package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"filmlink/internal/errs"
	"filmlink/internal/logger"
	"filmlink/internal/models"
	"filmlink/internal/storage"
)

// UserService 用户资料与好友图
type UserService struct {
	db      *gorm.DB
	friends storage.FriendGraph
	feed    storage.FeedLog
}

func NewUserService(db *gorm.DB, friends storage.FriendGraph, feed storage.FeedLog) *UserService {
	return &UserService{db: db, friends: friends, feed: feed}
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("пользователь с id = %d не найден", id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var cnt int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", user.Email).
		Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, errs.Conflict("имейл %s уже используется", user.Email)
	}

	// 名字为空时用登录名
	if user.Name == "" {
		user.Name = user.Login
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	logger.L.Info("User created", zap.Int64("id", user.ID))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, upd *models.User) (*models.User, error) {
	if upd.ID == 0 {
		return nil, errs.InvalidArgument("id не указан")
	}
	user, err := s.FindByID(ctx, upd.ID)
	if err != nil {
		return nil, err
	}

	user.Email = upd.Email
	user.Login = upd.Login
	user.Birthday = upd.Birthday
	if upd.Name != "" {
		user.Name = upd.Name
	} else {
		user.Name = upd.Login
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 连同用户在各索引里的痕迹一起清理
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// PutFriend 双向建边；自交好友与缺失用户分别报 Conflict / NotFound
func (s *UserService) PutFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return errs.Conflict("нельзя добавить в друзья самого себя")
	}
	if _, err := s.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.FindByID(ctx, friendID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.friends.WithTx(tx).Put(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if !created {
			// 重复添加幂等，动态流不再记录
			return nil
		}
		return s.feed.WithTx(tx).Append(ctx, userID, friendID, models.EventTypeFriend, models.OperationAdd)
	})
}

func (s *UserService) DeleteFriend(ctx context.Context, userID, friendID int64) error {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.FindByID(ctx, friendID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := s.friends.WithTx(tx).Delete(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return s.feed.WithTx(tx).Append(ctx, userID, friendID, models.EventTypeFriend, models.OperationRemove)
	})
}

func (s *UserService) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.friends.FriendsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loadUsers(ctx, ids)
}

func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.FindByID(ctx, otherID); err != nil {
		return nil, err
	}
	ids, err := s.friends.Common(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	return s.loadUsers(ctx, ids)
}

func (s *UserService) loadUsers(ctx context.Context, ids []int64) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	return users, err
}
