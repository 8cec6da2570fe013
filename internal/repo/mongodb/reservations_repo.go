package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reservationsCollection = "reservations"

type ReservationsRepoImpl struct{ coll *mongo.Collection }

func NewReservationsRepo(db *mongo.Database) *ReservationsRepoImpl {
	return &ReservationsRepoImpl{coll: db.Collection(reservationsCollection)}
}

func (r *ReservationsRepoImpl) Insert(ctx context.Context, res *domain.Reservation) (string, error) {
	doc := bson.M{}
	for k, v := range res.Extra {
		doc[k] = v
	}
	doc["placeid"] = res.PlaceID
	doc["uname"] = res.Uname
	doc["datetime"] = res.DateTime

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	out, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	oid, ok := out.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", out.InsertedID)
	}
	res.ID = oid.Hex()
	return res.ID, nil
}

func (r *ReservationsRepoImpl) ListByPlace(ctx context.Context, placeID string) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"placeid": placeID}, opts)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, nil
}

func (r *ReservationsRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func fromDocument(d bson.M) domain.Reservation {
	var res domain.Reservation
	res.Extra = make(map[string]any, len(d))
	for k, v := range d {
		switch k {
		case "_id":
			if oid, ok := v.(primitive.ObjectID); ok {
				res.ID = oid.Hex()
			} else {
				res.ID = fmt.Sprint(v)
			}
		case "placeid":
			res.PlaceID, _ = v.(string)
		case "uname":
			res.Uname, _ = v.(string)
		case "datetime":
			if dt, ok := v.(primitive.DateTime); ok {
				res.DateTime = dt.Time().UTC()
			}
		default:
			if !domain.IsReservedKey(k) {
				res.Extra[k] = v
			}
		}
	}
	return res
}
