// Package firestore implements the document store repositories.
package firestore

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a UserRepository backed by the document store.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) users() *firestore.CollectionRef {
	return r.client.Collection(constants.CollectionUsers)
}

// FindByUID returns the profile stored under the UID document key.
func (r *userRepository) FindByUID(ctx context.Context, uid string) (*entity.UserProfile, error) {
	doc, err := r.users().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "get user document")
	}

	var profile entity.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, errors.Wrap(err, "decode user document")
	}
	profile.UID = doc.Ref.ID

	return &profile, nil
}

// Save creates or overwrites a profile keyed by its UID.
func (r *userRepository) Save(ctx context.Context, profile *entity.UserProfile) error {
	if _, err := r.users().Doc(profile.UID).Set(ctx, profile); err != nil {
		return errors.Wrap(err, "set user document")
	}

	return nil
}

// UpdateRole changes the role field of an existing profile.
func (r *userRepository) UpdateRole(ctx context.Context, uid string, role entity.Role) error {
	_, err := r.users().Doc(uid).Update(ctx, []firestore.Update{
		{Path: "role", Value: string(role)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "update user role")
	}

	return nil
}

// List returns every profile in the directory.
func (r *userRepository) List(ctx context.Context) ([]*entity.UserProfile, error) {
	iter := r.users().OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var profiles []*entity.UserProfile
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate user documents")
		}

		var profile entity.UserProfile
		if err := doc.DataTo(&profile); err != nil {
			return nil, errors.Wrap(err, "decode user document")
		}
		profile.UID = doc.Ref.ID
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}
