package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"hotel-booking/internal/domain"
	"hotel-booking/internal/repository"
	"hotel-booking/internal/storage"
)

// HotelService manages hotels on behalf of their owner. Every method takes the
// caller's user id; hotels owned by anyone else behave as missing.
type HotelService interface {
	Create(ctx context.Context, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error)
	ListMine(ctx context.Context, ownerID string) ([]domain.Hotel, error)
	GetMine(ctx context.Context, id, ownerID string) (*domain.Hotel, error)
	UpdateMine(ctx context.Context, id, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error)
}

type hotelService struct {
	hotels repository.HotelRepository
	assets storage.AssetUploader
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewHotelService(hotels repository.HotelRepository, assets storage.AssetUploader, logger logrus.FieldLogger) HotelService {
	return &hotelService{
		hotels: hotels,
		assets: assets,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *hotelService) Create(ctx context.Context, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error) {
	if err := validateHotel(in, images); err != nil {
		return nil, err
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	hotel := &domain.Hotel{UserID: ownerID}
	in.Apply(hotel)
	hotel.ImageURLs = urls
	hotel.LastUpdated = s.now()

	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"hotel_id": hotel.ID,
		"user_id":  ownerID,
		"images":   len(urls),
	}).Info("hotel created")
	return hotel, nil
}

func (s *hotelService) ListMine(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	hotels, err := s.hotels.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

func (s *hotelService) GetMine(ctx context.Context, id, ownerID string) (*domain.Hotel, error) {
	return s.hotels.GetOwned(ctx, id, ownerID)
}

// UpdateMine replaces the editable fields of an owned hotel. Newly uploaded
// image URLs go in front of in.ImageURLs, or of the stored list when the
// caller sent none, so images accumulate across updates.
func (s *hotelService) UpdateMine(ctx context.Context, id, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error) {
	if err := validateHotel(in, images); err != nil {
		return nil, err
	}

	existing, err := s.hotels.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	kept := existing.ImageURLs
	if in.ImageURLs != nil {
		kept = in.ImageURLs
	}

	hotel := *existing
	in.Apply(&hotel)
	hotel.ImageURLs = append(urls, kept...)
	hotel.LastUpdated = s.now()

	stored, err := s.hotels.UpdateOwned(ctx, &hotel)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update hotel: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"hotel_id": stored.ID,
		"user_id":  ownerID,
		"images":   len(urls),
	}).Info("hotel updated")
	return stored, nil
}

// uploadImages sends every image to the asset host concurrently. The first
// failure cancels the uploads still in flight and no URLs are returned.
func (s *hotelService) uploadImages(ctx context.Context, images []domain.Image) ([]string, error) {
	urls := make([]string, len(images))
	if len(images) == 0 {
		return urls, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			url, err := s.assets.Upload(gctx, img.Data, img.MimeType)
			if err != nil {
				if !errors.Is(err, domain.ErrUpstream) {
					err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
				}
				return fmt.Errorf("upload image %d (%s): %w", i, img.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("images", len(images)).Warn("image upload failed")
		return nil, err
	}
	return urls, nil
}

func validateHotel(in domain.HotelInput, images []domain.Image) error {
	verr := in.Validate()
	if len(images) > domain.MaxImagesPerBatch {
		verr.Add("imageFiles", fmt.Sprintf("At most %d images are allowed", domain.MaxImagesPerBatch), strconv.Itoa(len(images)))
	}
	return verr.OrNil()
}
