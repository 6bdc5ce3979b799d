package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel-booking/internal/domain"
	"hotel-booking/internal/repository"
)

const hotelColumns = `id, user_id, name, city, country, description, type, price_per_night,
facilities, star_rating, adult_count, child_count, image_urls, last_updated`

type HotelRepository struct {
	db *sql.DB
}

func NewHotelRepository(db *sql.DB) repository.HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	if hotel.ID == "" {
		hotel.ID = uuid.NewString()
	}
	if hotel.LastUpdated.IsZero() {
		hotel.LastUpdated = time.Now().UTC()
	}

	facilities, imageURLs, err := encodeLists(hotel)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO hotels (`+hotelColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		hotel.ID,
		hotel.UserID,
		hotel.Name,
		hotel.City,
		hotel.Country,
		hotel.Description,
		hotel.Type,
		hotel.PricePerNight,
		facilities,
		hotel.StarRating,
		hotel.AdultCount,
		hotel.ChildCount,
		imageURLs,
		hotel.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert hotel: %w", err)
	}
	return nil
}

func (r *HotelRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+hotelColumns+`
FROM hotels
WHERE user_id = ?
ORDER BY last_updated DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	hotels := make([]domain.Hotel, 0)
	for rows.Next() {
		hotel, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, *hotel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotels: %w", err)
	}
	return hotels, nil
}

func (r *HotelRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+hotelColumns+`
FROM hotels
WHERE id = ? AND user_id = ?`,
		id,
		ownerID,
	)
	return scanHotel(row)
}

func (r *HotelRepository) UpdateOwned(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error) {
	facilities, imageURLs, err := encodeLists(hotel)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE hotels
SET name = ?, city = ?, country = ?, description = ?, type = ?, price_per_night = ?,
	facilities = ?, star_rating = ?, adult_count = ?, child_count = ?, image_urls = ?, last_updated = ?
WHERE id = ? AND user_id = ?`,
		hotel.Name,
		hotel.City,
		hotel.Country,
		hotel.Description,
		hotel.Type,
		hotel.PricePerNight,
		facilities,
		hotel.StarRating,
		hotel.AdultCount,
		hotel.ChildCount,
		imageURLs,
		hotel.LastUpdated,
		hotel.ID,
		hotel.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update hotel: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("hotel rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("hotel %s: %w", hotel.ID, domain.ErrNotFound)
	}

	stored, err := scanHotel(tx.QueryRowContext(ctx, `
SELECT `+hotelColumns+`
FROM hotels
WHERE id = ? AND user_id = ?`,
		hotel.ID,
		hotel.UserID,
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit hotel update: %w", err)
	}
	return stored, nil
}

func encodeLists(hotel *domain.Hotel) (string, string, error) {
	facilities, err := json.Marshal(nonNil(hotel.Facilities))
	if err != nil {
		return "", "", fmt.Errorf("encode facilities: %w", err)
	}
	imageURLs, err := json.Marshal(nonNil(hotel.ImageURLs))
	if err != nil {
		return "", "", fmt.Errorf("encode image urls: %w", err)
	}
	return string(facilities), string(imageURLs), nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func scanHotel(row interface {
	Scan(dest ...any) error
}) (*domain.Hotel, error) {
	var (
		hotel      domain.Hotel
		facilities string
		imageURLs  string
	)
	if err := row.Scan(
		&hotel.ID,
		&hotel.UserID,
		&hotel.Name,
		&hotel.City,
		&hotel.Country,
		&hotel.Description,
		&hotel.Type,
		&hotel.PricePerNight,
		&facilities,
		&hotel.StarRating,
		&hotel.AdultCount,
		&hotel.ChildCount,
		&imageURLs,
		&hotel.LastUpdated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("hotel: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan hotel: %w", err)
	}
	if err := json.Unmarshal([]byte(facilities), &hotel.Facilities); err != nil {
		return nil, fmt.Errorf("decode facilities: %w", err)
	}
	if err := json.Unmarshal([]byte(imageURLs), &hotel.ImageURLs); err != nil {
		return nil, fmt.Errorf("decode image urls: %w", err)
	}
	return &hotel, nil
}

var (
	_ repository.HotelRepository = (*HotelRepository)(nil)
	_ repository.UserRepository  = (*UserRepository)(nil)
)
