package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmlink/internal/errs"
	"filmlink/internal/logger"
	"filmlink/internal/models"
	"filmlink/internal/storage"
)

// FilmService 电影目录与点赞索引
type FilmService struct {
	db      *gorm.DB
	likes   storage.LikeIndex
	feed    storage.FeedLog
	popular *PopularityService
}

func NewFilmService(db *gorm.DB, likes storage.LikeIndex, feed storage.FeedLog, popular *PopularityService) *FilmService {
	return &FilmService{db: db, likes: likes, feed: feed, popular: popular}
}

func (s *FilmService) FindAll(ctx context.Context) ([]models.Film, error) {
	films := make([]models.Film, 0)
	err := filmQuery(s.db.WithContext(ctx)).Order("id ASC").Find(&films).Error
	return films, err
}

func (s *FilmService) FindByID(ctx context.Context, id int64) (*models.Film, error) {
	var film models.Film
	if err := filmQuery(s.db.WithContext(ctx)).First(&film, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("фильм с id = %d не найден", id)
		}
		return nil, err
	}
	return &film, nil
}

func (s *FilmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := s.checkRefs(ctx, film); err != nil {
		return nil, err
	}

	film.MpaID = film.Mpa.ID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(film).Error; err != nil {
			return err
		}
		return replaceFilmRefs(tx, film)
	})
	if err != nil {
		return nil, err
	}
	logger.L.Info("Film created", zap.Int64("id", film.ID), zap.String("name", film.Name))
	return s.FindByID(ctx, film.ID)
}

func (s *FilmService) Update(ctx context.Context, upd *models.Film) (*models.Film, error) {
	if upd.ID == 0 {
		return nil, errs.InvalidArgument("id не указан")
	}
	if _, err := s.FindByID(ctx, upd.ID); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, upd); err != nil {
		return nil, err
	}

	upd.MpaID = upd.Mpa.ID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Film{ID: upd.ID}).
			Select("name", "description", "release_date", "duration", "mpa_id").
			Updates(map[string]any{
				"name":         upd.Name,
				"description":  upd.Description,
				"release_date": upd.ReleaseDate,
				"duration":     upd.Duration,
				"mpa_id":       upd.MpaID,
			}).Error; err != nil {
			return err
		}
		return replaceFilmRefs(tx, upd)
	})
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, upd.ID)
}

func (s *FilmService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("film_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM film_genres WHERE film_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM film_directors WHERE film_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Film{}, id).Error
	})
	if err != nil {
		return err
	}
	s.popular.Invalidate(ctx)
	return nil
}

// PutLike 点赞。幂等；只有首次插入才写动态流，和索引写入同一事务
func (s *FilmService) PutLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmID(ctx, filmID); err != nil {
		return err
	}
	if err := s.checkUserID(ctx, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.likes.WithTx(tx).Put(ctx, userID, filmID)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		return s.feed.WithTx(tx).Append(ctx, userID, filmID, models.EventTypeLike, models.OperationAdd)
	})
	if err != nil {
		return err
	}
	s.popular.Invalidate(ctx)
	return nil
}

// DeleteLike 取消点赞。删空边是空操作，不报错也不写动态流
func (s *FilmService) DeleteLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmID(ctx, filmID); err != nil {
		return err
	}
	if err := s.checkUserID(ctx, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := s.likes.WithTx(tx).Delete(ctx, userID, filmID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return s.feed.WithTx(tx).Append(ctx, userID, filmID, models.EventTypeLike, models.OperationRemove)
	})
	if err != nil {
		return err
	}
	s.popular.Invalidate(ctx)
	return nil
}

// CommonFilms 两个用户共同点赞的电影，按热度排序
func (s *FilmService) CommonFilms(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	if err := s.checkUserID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.checkUserID(ctx, friendID); err != nil {
		return nil, err
	}

	ids := make([]int64, 0)
	err := s.db.WithContext(ctx).Raw(`
		SELECT l1.film_id FROM likes l1
		JOIN likes l2 ON l1.film_id = l2.film_id
		LEFT JOIN likes lc ON lc.film_id = l1.film_id
		WHERE l1.user_id = ? AND l2.user_id = ?
		GROUP BY l1.film_id
		ORDER BY COUNT(lc.id) DESC, l1.film_id ASC
	`, userID, friendID).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return loadFilmsOrdered(ctx, s.db, ids)
}

// DirectorFilms 某导演的全部电影，sortBy 支持 year / likes
func (s *FilmService) DirectorFilms(ctx context.Context, directorID int64, sortBy string) ([]models.Film, error) {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Director{}).Where("id = ?", directorID).Count(&cnt).Error; err != nil {
		return nil, err
	}
	if cnt == 0 {
		return nil, errs.NotFound("режиссер с id = %d не найден", directorID)
	}

	ids := make([]int64, 0)
	var err error
	switch sortBy {
	case "year", "":
		err = s.db.WithContext(ctx).Raw(`
			SELECT f.id FROM films f
			JOIN film_directors fd ON fd.film_id = f.id
			WHERE fd.director_id = ?
			ORDER BY f.release_date ASC, f.id ASC
		`, directorID).Scan(&ids).Error
	case "likes":
		err = s.db.WithContext(ctx).Raw(`
			SELECT f.id FROM films f
			JOIN film_directors fd ON fd.film_id = f.id
			LEFT JOIN likes l ON l.film_id = f.id
			WHERE fd.director_id = ?
			GROUP BY f.id
			ORDER BY COUNT(l.id) DESC, f.id ASC
		`, directorID).Scan(&ids).Error
	default:
		return nil, errs.InvalidArgument("неизвестный параметр сортировки %q", sortBy)
	}
	if err != nil {
		return nil, err
	}
	return loadFilmsOrdered(ctx, s.db, ids)
}

// Search 按名称/导演名模糊搜索，by 取值 title、director 或两者逗号组合
func (s *FilmService) Search(ctx context.Context, query, by string) ([]models.Film, error) {
	if query == "" {
		return nil, errs.InvalidArgument("поисковый запрос пуст")
	}
	byTitle, byDirector := false, false
	if by == "" {
		byTitle = true
	}
	for _, part := range strings.Split(by, ",") {
		switch strings.TrimSpace(part) {
		case "title":
			byTitle = true
		case "director":
			byDirector = true
		case "":
		default:
			return nil, errs.InvalidArgument("неизвестное поле поиска %q", part)
		}
	}

	pattern := "%" + strings.ToLower(query) + "%"
	conds := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if byTitle {
		conds = append(conds, "LOWER(f.name) LIKE ?")
		args = append(args, pattern)
	}
	if byDirector {
		conds = append(conds, `f.id IN (
			SELECT fd.film_id FROM film_directors fd
			JOIN directors d ON d.id = fd.director_id
			WHERE LOWER(d.name) LIKE ?
		)`)
		args = append(args, pattern)
	}

	ids := make([]int64, 0)
	sql := `
		SELECT f.id FROM films f
		LEFT JOIN likes l ON l.film_id = f.id
		WHERE ` + strings.Join(conds, " OR ") + `
		GROUP BY f.id
		ORDER BY COUNT(l.id) DESC, f.id ASC
	`
	if err := s.db.WithContext(ctx).Raw(sql, args...).Scan(&ids).Error; err != nil {
		return nil, err
	}
	return loadFilmsOrdered(ctx, s.db, ids)
}

func (s *FilmService) checkFilmID(ctx context.Context, id int64) error {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Film{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return errs.NotFound("фильм с id = %d не найден", id)
	}
	return nil
}

func (s *FilmService) checkUserID(ctx context.Context, id int64) error {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return errs.NotFound("пользователь с id = %d не найден", id)
	}
	return nil
}

// checkRefs 校验分级、类型、导演引用都存在
func (s *FilmService) checkRefs(ctx context.Context, film *models.Film) error {
	var cnt int64
	if err := s.db.WithContext(ctx).Model(&models.Mpa{}).Where("id = ?", film.Mpa.ID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return errs.NotFound("рейтинг с id = %d не найден", film.Mpa.ID)
	}
	for _, g := range film.Genres {
		if err := s.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", g.ID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return errs.NotFound("жанр с id = %d не найден", g.ID)
		}
	}
	for _, d := range film.Directors {
		if err := s.db.WithContext(ctx).Model(&models.Director{}).Where("id = ?", d.ID).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return errs.NotFound("режиссер с id = %d не найден", d.ID)
		}
	}
	return nil
}

// replaceFilmRefs 重写电影的类型/导演关联行（先删后插，去重）
func replaceFilmRefs(tx *gorm.DB, film *models.Film) error {
	if err := tx.Exec("DELETE FROM film_genres WHERE film_id = ?", film.ID).Error; err != nil {
		return err
	}
	seen := make(map[int64]bool)
	for _, g := range film.Genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		if err := tx.Exec("INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?)", film.ID, g.ID).Error; err != nil {
			return err
		}
	}

	if err := tx.Exec("DELETE FROM film_directors WHERE film_id = ?", film.ID).Error; err != nil {
		return err
	}
	seen = make(map[int64]bool)
	for _, d := range film.Directors {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		if err := tx.Exec("INSERT INTO film_directors (film_id, director_id) VALUES (?, ?)", film.ID, d.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// filmQuery 带上电影的关联预加载，类型按 ID 升序保证输出稳定
func filmQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Mpa").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id ASC") }).
		Preload("Directors", func(db *gorm.DB) *gorm.DB { return db.Order("directors.id ASC") })
}

// loadFilmsOrdered 按给定 ID 顺序加载电影
func loadFilmsOrdered(ctx context.Context, db *gorm.DB, ids []int64) ([]models.Film, error) {
	films := make([]models.Film, 0, len(ids))
	if len(ids) == 0 {
		return films, nil
	}
	loaded := make([]models.Film, 0, len(ids))
	if err := filmQuery(db.WithContext(ctx)).Where("id IN ?", ids).Find(&loaded).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Film, len(loaded))
	for _, f := range loaded {
		byID[f.ID] = f
	}
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			films = append(films, f)
		}
	}
	return films, nil
}
