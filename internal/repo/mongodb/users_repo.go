package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type UsersRepoImpl struct{ coll *mongo.Collection }

func NewUsersRepo(db *mongo.Database) *UsersRepoImpl {
	return &UsersRepoImpl{coll: db.Collection(usersCollection)}
}

func (r *UsersRepoImpl) FindByUname(ctx context.Context, uname string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var u domain.User
	if err := r.coll.FindOne(ctx, bson.M{"uname": uname}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UsersRepoImpl) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}
