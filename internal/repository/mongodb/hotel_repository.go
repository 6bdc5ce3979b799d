package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotel-booking/internal/domain"
	"hotel-booking/internal/repository"
)

type hotelDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"userId"`
	Name          string             `bson:"name"`
	City          string             `bson:"city"`
	Country       string             `bson:"country"`
	Description   string             `bson:"description"`
	Type          string             `bson:"type"`
	PricePerNight float64            `bson:"pricePerNight"`
	Facilities    []string           `bson:"facilities"`
	StarRating    int                `bson:"starRating"`
	AdultCount    int                `bson:"adultCount"`
	ChildCount    int                `bson:"childCount"`
	ImageURLs     []string           `bson:"imageUrls"`
	LastUpdated   time.Time          `bson:"lastUpdated"`
}

func hotelToDocument(h *domain.Hotel) hotelDocument {
	return hotelDocument{
		UserID:        h.UserID,
		Name:          h.Name,
		City:          h.City,
		Country:       h.Country,
		Description:   h.Description,
		Type:          h.Type,
		PricePerNight: h.PricePerNight,
		Facilities:    nonNil(h.Facilities),
		StarRating:    h.StarRating,
		AdultCount:    h.AdultCount,
		ChildCount:    h.ChildCount,
		ImageURLs:     nonNil(h.ImageURLs),
		LastUpdated:   h.LastUpdated,
	}
}

func (d hotelDocument) toDomain() domain.Hotel {
	return domain.Hotel{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		Name:          d.Name,
		City:          d.City,
		Country:       d.Country,
		Description:   d.Description,
		Type:          d.Type,
		PricePerNight: d.PricePerNight,
		Facilities:    nonNil(d.Facilities),
		StarRating:    d.StarRating,
		AdultCount:    d.AdultCount,
		ChildCount:    d.ChildCount,
		ImageURLs:     nonNil(d.ImageURLs),
		LastUpdated:   d.LastUpdated,
	}
}

type HotelRepository struct {
	hotels *mongo.Collection
}

func NewHotelRepository(db *mongo.Database) repository.HotelRepository {
	return &HotelRepository{hotels: db.Collection(hotelsCollection)}
}

func (r *HotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	if hotel.LastUpdated.IsZero() {
		hotel.LastUpdated = time.Now().UTC()
	}
	doc := hotelToDocument(hotel)
	doc.ID = primitive.NewObjectID()

	if _, err := r.hotels.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert hotel: %w", err)
	}
	hotel.ID = doc.ID.Hex()
	return nil
}

func (r *HotelRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	cur, err := r.hotels.Find(ctx,
		bson.M{"userId": ownerID},
		options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}

	var docs []hotelDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode hotels: %w", err)
	}

	hotels := make([]domain.Hotel, 0, len(docs))
	for _, doc := range docs {
		hotels = append(hotels, doc.toDomain())
	}
	return hotels, nil
}

func (r *HotelRepository) GetOwned(ctx context.Context, id, ownerID string) (*domain.Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("hotel %s: %w", id, domain.ErrNotFound)
	}

	var doc hotelDocument
	if err := r.hotels.FindOne(ctx, bson.M{"_id": oid, "userId": ownerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("hotel %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find hotel: %w", err)
	}
	hotel := doc.toDomain()
	return &hotel, nil
}

func (r *HotelRepository) UpdateOwned(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(hotel.ID)
	if err != nil {
		return nil, fmt.Errorf("hotel %s: %w", hotel.ID, domain.ErrNotFound)
	}

	doc := hotelToDocument(hotel)
	update := bson.M{"$set": bson.M{
		"name":          doc.Name,
		"city":          doc.City,
		"country":       doc.Country,
		"description":   doc.Description,
		"type":          doc.Type,
		"pricePerNight": doc.PricePerNight,
		"facilities":    doc.Facilities,
		"starRating":    doc.StarRating,
		"adultCount":    doc.AdultCount,
		"childCount":    doc.ChildCount,
		"imageUrls":     doc.ImageURLs,
		"lastUpdated":   doc.LastUpdated,
	}}

	var stored hotelDocument
	err = r.hotels.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "userId": hotel.UserID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("hotel %s: %w", hotel.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update hotel: %w", err)
	}
	result := stored.toDomain()
	return &result, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var (
	_ repository.HotelRepository = (*HotelRepository)(nil)
	_ repository.UserRepository  = (*UserRepository)(nil)
)
