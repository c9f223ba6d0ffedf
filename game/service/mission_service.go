// game/service/mission_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// MissionStore is the persistence contract for missions. AddAccepted and
// AddCompleted are guarded set-inserts: they report false when the guard
// (not-yet-accepted, accepted-but-not-completed) does not hold, which keeps
// the completed-implies-accepted invariant true under concurrency.
type MissionStore interface {
	Create(ctx context.Context, mission *models.Mission) error
	GetByID(ctx context.Context, id string) (*models.Mission, error)
	Update(ctx context.Context, mission *models.Mission) error
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status models.MissionStatus) ([]models.Mission, error)
	ListByAcceptedUser(ctx context.Context, userID string) ([]models.Mission, error)
	AddAccepted(ctx context.Context, missionID, userID string) (bool, error)
	AddCompleted(ctx context.Context, missionID, userID string) (bool, error)
}

// RewardGranter is the slice of profile persistence missions need to pay out
// completion rewards.
type RewardGranter interface {
	GrantRewardByUser(ctx context.Context, userID string, delta RewardDelta) (bool, error)
}

// MissionService tracks the per-user mission lifecycle:
// not-accepted -> accepted -> completed.
type MissionService struct {
	missionStore MissionStore
	rewards      RewardGranter
}

// NewMissionService creates a new MissionService instance.
func NewMissionService(ms MissionStore, rg RewardGranter) *MissionService {
	return &MissionService{
		missionStore: ms,
		rewards:      rg,
	}
}

// GetMission retrieves a mission by id.
func (ms *MissionService) GetMission(ctx context.Context, id string) (*models.Mission, error) {
	mission, err := ms.missionStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("service failed to get mission %s: %w", id, err)
	}
	return mission, nil
}

// ListAvailable returns the missions browsable by users. The status field is
// maintained by masters and is independent of per-user accept/complete sets.
func (ms *MissionService) ListAvailable(ctx context.Context) ([]models.Mission, error) {
	missions, err := ms.missionStore.ListByStatus(ctx, models.MissionAvailable)
	if err != nil {
		return nil, fmt.Errorf("service failed to list available missions: %w", err)
	}
	return missions, nil
}

// ListAcceptedBy returns the missions a user has accepted (in progress or done).
func (ms *MissionService) ListAcceptedBy(ctx context.Context, userID string) ([]models.Mission, error) {
	missions, err := ms.missionStore.ListByAcceptedUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service failed to list missions for user %s: %w", userID, err)
	}
	return missions, nil
}

// Accept puts the user's mission into the accepted state. Level/class/team
// requirements are advisory filters for the UI and are not enforced here.
func (ms *MissionService) Accept(ctx context.Context, missionID, userID string) error {
	mission, err := ms.GetMission(ctx, missionID)
	if err != nil {
		return err
	}
	for _, id := range mission.AcceptedBy {
		if id == userID {
			return ErrAlreadyAccepted
		}
	}

	ok, err := ms.missionStore.AddAccepted(ctx, missionID, userID)
	if err != nil {
		return fmt.Errorf("service failed to accept mission %s for user %s: %w", missionID, userID, err)
	}
	if !ok {
		return ErrAlreadyAccepted
	}
	return nil
}

// Complete marks the user's accepted mission as completed and grants its
// reward. Completion requires prior acceptance and happens at most once per
// user. The reward grant recomputes the profile's level from the new
// experience total.
func (ms *MissionService) Complete(ctx context.Context, missionID, userID string) error {
	mission, err := ms.GetMission(ctx, missionID)
	if err != nil {
		return err
	}

	accepted := false
	for _, id := range mission.AcceptedBy {
		if id == userID {
			accepted = true
			break
		}
	}
	if !accepted {
		return ErrNotAccepted
	}
	for _, id := range mission.CompletedBy {
		if id == userID {
			return ErrAlreadyCompleted
		}
	}

	ok, err := ms.missionStore.AddCompleted(ctx, missionID, userID)
	if err != nil {
		return fmt.Errorf("service failed to complete mission %s for user %s: %w", missionID, userID, err)
	}
	if !ok {
		return ErrAlreadyCompleted
	}

	if mission.Reward.Experience > 0 || mission.Reward.Gold > 0 {
		granted, err := ms.rewards.GrantRewardByUser(ctx, userID, RewardDelta{
			Experience: mission.Reward.Experience,
			Gold:       mission.Reward.Gold,
		})
		if err != nil {
			return fmt.Errorf("mission %s completed but reward grant failed for user %s: %w", missionID, userID, err)
		}
		if !granted {
			// Completion stands even when the user has no profile to pay into.
			log.Printf("WARN: Mission %s completed by user %s who has no profile; reward not granted.", missionID, userID)
		}
	}
	return nil
}

// CreateMissionInput is everything a master provides for a new mission.
type CreateMissionInput struct {
	Title         string
	Description   string
	Difficulty    models.MissionDifficulty
	Reward        models.MissionReward
	Requirements  *models.MissionRequirements
	CreatedBy     string
	CreatedByName string
}

// CreateMission creates a mission in the available state (master only,
// enforced at the API layer).
func (ms *MissionService) CreateMission(ctx context.Context, input CreateMissionInput) (*models.Mission, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("mission title is required")
	}
	now := time.Now()
	mission := &models.Mission{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Description:   input.Description,
		Difficulty:    input.Difficulty,
		Status:        models.MissionAvailable,
		Reward:        input.Reward,
		Requirements:  input.Requirements,
		AcceptedBy:    []string{},
		CompletedBy:   []string{},
		CreatedBy:     input.CreatedBy,
		CreatedByName: input.CreatedByName,
		CreatedAt:     &now,
		UpdatedAt:     &now,
	}
	if err := ms.missionStore.Create(ctx, mission); err != nil {
		return nil, fmt.Errorf("service failed to create mission: %w", err)
	}
	return mission, nil
}

// UpdateMission edits mission fields. Only the creator or a master may edit;
// the per-user accepted/completed sets are never replaced through this path.
func (ms *MissionService) UpdateMission(ctx context.Context, mission *models.Mission, actingUserID string, isMaster bool) error {
	existing, err := ms.GetMission(ctx, mission.ID)
	if err != nil {
		return err
	}
	if existing.CreatedBy != actingUserID && !isMaster {
		return ErrPermissionDenied
	}

	mission.AcceptedBy = existing.AcceptedBy
	mission.CompletedBy = existing.CompletedBy
	mission.CreatedBy = existing.CreatedBy
	mission.CreatedAt = existing.CreatedAt
	now := time.Now()
	mission.UpdatedAt = &now

	if err := ms.missionStore.Update(ctx, mission); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMissionNotFound
		}
		return fmt.Errorf("service failed to update mission %s: %w", mission.ID, err)
	}
	return nil
}

// DeleteMission removes a mission. Only the creator or a master may delete.
func (ms *MissionService) DeleteMission(ctx context.Context, id, actingUserID string, isMaster bool) error {
	existing, err := ms.GetMission(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != actingUserID && !isMaster {
		return ErrPermissionDenied
	}
	if err := ms.missionStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("service failed to delete mission %s: %w", id, err)
	}
	return nil
}
