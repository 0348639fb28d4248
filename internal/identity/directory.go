package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/matthewhartstonge/argon2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const accountCollection = "accounts"

// accountDocument is the stored shape of a directory account. Claims live in
// a nested map so a single claim can be set without touching its siblings.
type accountDocument struct {
	UID           string          `bson:"_id"`
	Email         string          `bson:"email"`
	DisplayName   string          `bson:"display_name"`
	EmailVerified bool            `bson:"email_verified"`
	PasswordHash  string          `bson:"password_hash"`
	Claims        map[string]bool `bson:"claims,omitempty"`
	CreatedAt     time.Time       `bson:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at"`
}

func (d *accountDocument) toAccount() *Account {
	claims := d.Claims
	if claims == nil {
		claims = map[string]bool{}
	}

	return &Account{
		UID:           d.UID,
		Email:         d.Email,
		DisplayName:   d.DisplayName,
		EmailVerified: d.EmailVerified,
		Claims:        claims,
		CreatedAt:     d.CreatedAt,
	}
}

type directoryProvider struct {
	db     *mongo.Database
	hasher argon2.Config
}

// NewDirectoryProvider creates the mongo-backed identity provider. Accounts
// live in their own collection with argon2id password hashes.
func NewDirectoryProvider(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) Provider {
	collection := db.Collection(accountCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create account indexes")
	}

	return &directoryProvider{
		db:     db,
		hasher: argon2.DefaultConfig(),
	}
}

func (p *directoryProvider) CreateAccount(ctx context.Context, params NewAccount) (*Account, error) {
	encoded, err := p.hasher.HashEncoded([]byte(params.Password))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := accountDocument{
		UID:           uuid.NewString(),
		Email:         params.Email,
		DisplayName:   params.DisplayName,
		EmailVerified: params.EmailVerified,
		PasswordHash:  string(encoded),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := p.db.Collection(accountCollection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}

		return nil, err
	}

	return doc.toAccount(), nil
}

func (p *directoryProvider) GetAccount(ctx context.Context, uid string) (*Account, error) {
	return p.findOne(ctx, bson.M{"_id": uid})
}

func (p *directoryProvider) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return p.findOne(ctx, bson.M{"email": email})
}

func (p *directoryProvider) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	result := p.db.Collection(accountCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, result.Err()
	}

	var doc accountDocument
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	ok, err := argon2.VerifyEncoded([]byte(password), []byte(doc.PasswordHash))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return doc.toAccount(), nil
}

func (p *directoryProvider) SetClaim(ctx context.Context, uid, claim string, value bool) (*Account, error) {
	// Setting the nested field updates one claim atomically without
	// rewriting the claims map.
	result := p.db.Collection(accountCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"claims." + claim: value, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}

		return nil, result.Err()
	}

	var doc accountDocument
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return doc.toAccount(), nil
}

func (p *directoryProvider) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	result := p.db.Collection(accountCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}

		return nil, result.Err()
	}

	var doc accountDocument
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return doc.toAccount(), nil
}
