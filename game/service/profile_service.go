// game/service/profile_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// RewardDelta is a single atomic grant applied to a profile. The store applies
// all fields in one write and recomputes level from the new experience total,
// so no code path can desync level from experience.
type RewardDelta struct {
	Experience    int
	Gold          int
	CreatureKills int
	PlayerKills   int
	Deaths        int
}

// ProfileUpdate carries partial profile edits. Nil fields are left untouched.
// The fields below the marker are privileged and require the master role.
type ProfileUpdate struct {
	Username    *string
	Description *string
	Faction     *string
	ImageURL    *string
	Skills      *[]models.Skill
	Health      *int
	Mana        *int

	// Master-only fields.
	Level         *int
	Experience    *int
	Attributes    *models.Attributes
	CreatureKills *int
	PlayerKills   *int
	Deaths        *int
	Gold          *int
	IsDeceased    *bool
	CauseOfDeath  *string
}

// HasPrivilegedFields reports whether the update touches master-only fields.
func (u *ProfileUpdate) HasPrivilegedFields() bool {
	return u.Level != nil || u.Experience != nil || u.Attributes != nil ||
		u.CreatureKills != nil || u.PlayerKills != nil || u.Deaths != nil ||
		u.Gold != nil || u.IsDeceased != nil || u.CauseOfDeath != nil
}

// ProfileStore is the persistence contract the profile service needs.
// The MongoDB implementation lives in game/store.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	ApplyUpdate(ctx context.Context, id string, update *ProfileUpdate) error
	Delete(ctx context.Context, id string) error
	GrantReward(ctx context.Context, id string, delta RewardDelta) (*models.Profile, error)
}

// ProfileService encapsulates the business logic for character profiles. The
// same service type serves the master-created character sheets collection.
type ProfileService struct {
	profileStore ProfileStore
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(ps ProfileStore) *ProfileService {
	return &ProfileService{profileStore: ps}
}

// CreateProfileInput is everything the setup flow provides for a new profile.
type CreateProfileInput struct {
	UserID      string
	Username    string
	Class       string
	Attributes  models.Attributes
	Faction     string
	Description string
	ImageURL    string
	Gold        int
}

// CreateProfile creates the one profile a user owns. Health and mana pools
// are seeded from the attribute preview; level comes from the experience
// formula. A user who already has a profile gets ErrProfileAlreadyExists.
func (ps *ProfileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*models.Profile, error) {
	if input.UserID == "" || input.Username == "" {
		return nil, fmt.Errorf("user id and username are required")
	}

	existing, err := ps.profileStore.GetByUserID(ctx, input.UserID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("service failed to check for existing profile: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileAlreadyExists
	}

	baseHealth, baseMana := AttributePreview(input.Attributes.Constitution, input.Attributes.Intelligence)
	now := time.Now()
	profile := &models.Profile{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		Username:   input.Username,
		Class:      input.Class,
		Level:      LevelForExperience(0),
		Experience: 0,
		Health:     baseHealth,
		MaxHealth:  baseHealth,
		Mana:       baseMana,
		MaxMana:    baseMana,
		Attributes: input.Attributes,
		Gold:       input.Gold,
		Inventory:  []models.InventoryItem{},
		Faction:    input.Faction,
		Description: input.Description,
		ImageURL:   input.ImageURL,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}

	if err := ps.profileStore.Create(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrProfileAlreadyExists
		}
		return nil, fmt.Errorf("service failed to create profile: %w", err)
	}
	return profile, nil
}

// GetProfile retrieves a profile by its id.
func (ps *ProfileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := ps.profileStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("service failed to get profile: %w", err)
	}
	return profile, nil
}

// GetProfileByUser retrieves the profile owned by a user.
func (ps *ProfileService) GetProfileByUser(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := ps.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("service failed to get profile by user: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies a partial edit. Only the owner may edit their profile
// and only masters may touch privileged fields. When experience changes
// without an explicit level, the level is recomputed from the formula.
func (ps *ProfileService) UpdateProfile(ctx context.Context, id, actingUserID string, isMaster bool, update *ProfileUpdate) (*models.Profile, error) {
	profile, err := ps.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if profile.UserID != actingUserID && !isMaster {
		return nil, ErrPermissionDenied
	}
	if update.HasPrivilegedFields() && !isMaster {
		return nil, ErrPermissionDenied
	}

	if update.Experience != nil && update.Level == nil {
		level := LevelForExperience(*update.Experience)
		update.Level = &level
	}

	if err := ps.profileStore.ApplyUpdate(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("service failed to update profile: %w", err)
	}
	return ps.GetProfile(ctx, id)
}

// DeleteProfile removes a profile. Allowed for the owner or a master.
func (ps *ProfileService) DeleteProfile(ctx context.Context, id, actingUserID string, isMaster bool) error {
	profile, err := ps.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	if profile.UserID != actingUserID && !isMaster {
		return ErrPermissionDenied
	}
	if err := ps.profileStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("service failed to delete profile: %w", err)
	}
	return nil
}

// RegisterCreatureKill records a creature kill and grants its experience and
// gold in one atomic write. Returns the updated profile.
func (ps *ProfileService) RegisterCreatureKill(ctx context.Context, profileID string, experience, gold int) (*models.Profile, error) {
	return ps.grant(ctx, profileID, RewardDelta{Experience: experience, Gold: gold, CreatureKills: 1})
}

// RegisterPlayerKill records a player kill and grants its experience.
func (ps *ProfileService) RegisterPlayerKill(ctx context.Context, profileID string, experience int) (*models.Profile, error) {
	return ps.grant(ctx, profileID, RewardDelta{Experience: experience, PlayerKills: 1})
}

// RegisterDeath increments the death counter.
func (ps *ProfileService) RegisterDeath(ctx context.Context, profileID string) (*models.Profile, error) {
	return ps.grant(ctx, profileID, RewardDelta{Deaths: 1})
}

// GrantExperience grants raw experience and gold with no kill counters, used
// by masters to reward roleplay.
func (ps *ProfileService) GrantExperience(ctx context.Context, profileID string, experience, gold int) (*models.Profile, error) {
	return ps.grant(ctx, profileID, RewardDelta{Experience: experience, Gold: gold})
}

func (ps *ProfileService) grant(ctx context.Context, profileID string, delta RewardDelta) (*models.Profile, error) {
	profile, err := ps.profileStore.GrantReward(ctx, profileID, delta)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("service failed to grant reward: %w", err)
	}
	return profile, nil
}
