package memory

import (
	"context"
	"sort"
	"time"

	"kerramientas-backend/internal/domain"
)

type ratingRepository struct {
	store *Store
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rating.ID = s.nextRatingID
	s.nextRatingID++
	rating.CreatedAt = time.Now().UTC()
	s.ratings[rating.ID] = copyRating(rating)
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id int32) (*domain.Rating, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rating, ok := s.ratings[id]
	if !ok {
		return nil, domain.NewNotFoundError("rating", id)
	}
	return copyRating(rating), nil
}

func (r *ratingRepository) GetByUserAndTool(ctx context.Context, userID, toolID int32) (*domain.Rating, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rating := range s.ratings {
		if rating.UserID == userID && rating.ToolID == toolID {
			return copyRating(rating), nil
		}
	}
	return nil, domain.NewNotFoundError("rating", 0)
}

func (r *ratingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.ratings[rating.ID]
	if !ok {
		return domain.NewNotFoundError("rating", rating.ID)
	}

	now := time.Now().UTC()
	stored.Score = rating.Score
	if rating.Comment != nil {
		c := *rating.Comment
		stored.Comment = &c
	} else {
		stored.Comment = nil
	}
	stored.UpdatedAt = &now
	rating.UpdatedAt = &now
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int32) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ratings[id]; !ok {
		return domain.NewNotFoundError("rating", id)
	}
	delete(s.ratings, id)
	return nil
}

func (r *ratingRepository) ListByTool(ctx context.Context, toolID int32) ([]domain.Rating, error) {
	return r.list(func(rating *domain.Rating) bool { return rating.ToolID == toolID })
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Rating, error) {
	return r.list(func(rating *domain.Rating) bool { return rating.UserID == userID })
}

func (r *ratingRepository) StatsByTool(ctx context.Context, toolID int32) (*domain.RatingStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.RatingStats{Distribution: map[int]int32{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum float64
	for _, rating := range s.ratings {
		if rating.ToolID != toolID {
			continue
		}
		stats.TotalRatings++
		sum += rating.Score
		star := int(rating.Score)
		if star >= 1 && star <= 5 {
			stats.Distribution[star]++
		}
	}
	if stats.TotalRatings > 0 {
		stats.AverageRating = sum / float64(stats.TotalRatings)
	}
	return stats, nil
}

func (r *ratingRepository) list(match func(*domain.Rating) bool) ([]domain.Rating, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ratings []domain.Rating
	for _, rating := range s.ratings {
		if match(rating) {
			ratings = append(ratings, *copyRating(rating))
		}
	}
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})
	return ratings, nil
}

func copyRating(rating *domain.Rating) *domain.Rating {
	cp := *rating
	if rating.Comment != nil {
		c := *rating.Comment
		cp.Comment = &c
	}
	if rating.UpdatedAt != nil {
		ts := *rating.UpdatedAt
		cp.UpdatedAt = &ts
	}
	return &cp
}
