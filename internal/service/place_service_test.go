package service

import (
	"errors"
	"testing"

	"locallens-server/internal/repository"

	"gorm.io/gorm"
)

func newPlaceService(db *gorm.DB) *PlaceService {
	return NewPlaceService(repository.NewPlaceRepository(db), repository.NewUserRepository(db))
}

func TestCreatePlaceAndReview(t *testing.T) {
	db := newTestDB(t)
	svc := newPlaceService(db)
	author := createTestUser(t, db, "reviewer")

	place, err := svc.CreatePlace(author.ID, "Tartine Bakery", "600 Guerrero St", nil, nil)
	if err != nil {
		t.Fatalf("create place: %v", err)
	}

	if _, err := svc.AddReview(author.ID, place.ID, 5, "Best bread in town"); err != nil {
		t.Fatalf("add review: %v", err)
	}

	reviews, err := svc.ListReviews(place.ID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("reviews = %d, want 1", len(reviews))
	}
	if reviews[0].Rating != 5 {
		t.Errorf("rating = %d, want 5", reviews[0].Rating)
	}
	if reviews[0].Author == nil || reviews[0].Author.ID != author.ID {
		t.Errorf("author = %+v, want user %d", reviews[0].Author, author.ID)
	}
}

func TestAddReviewRatingBounds(t *testing.T) {
	db := newTestDB(t)
	svc := newPlaceService(db)
	author := createTestUser(t, db, "reviewer")

	place, err := svc.CreatePlace(author.ID, "Dolores Park", "", nil, nil)
	if err != nil {
		t.Fatalf("create place: %v", err)
	}

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.AddReview(author.ID, place.ID, rating, "nope"); !errors.Is(err, ErrInvalid) {
			t.Errorf("rating %d error = %v, want ErrInvalid", rating, err)
		}
	}

	// 越界评分不写入
	reviews, err := svc.ListReviews(place.ID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 0 {
		t.Errorf("reviews = %d, want 0", len(reviews))
	}
}

func TestAddReviewUnknownPlace(t *testing.T) {
	db := newTestDB(t)
	svc := newPlaceService(db)
	author := createTestUser(t, db, "reviewer")

	if _, err := svc.AddReview(author.ID, 999, 4, "ghost place"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown place error = %v, want ErrNotFound", err)
	}
}
