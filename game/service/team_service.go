// game/service/team_service.go
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

// TeamStore is the persistence contract for teams. AppendMember is a guarded
// push: it reports false when the user is already a member or the team is at
// capacity, so concurrent joins cannot overfill a team.
type TeamStore interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Delete(ctx context.Context, id string) error
	AppendMember(ctx context.Context, teamID string, member models.TeamMember) (bool, error)
	RemoveMember(ctx context.Context, teamID, userID string) (bool, error)
	FindByMember(ctx context.Context, userID string) (*models.Team, error)
}

// TeamService enforces the membership invariants: one leader, bounded
// capacity, a user on at most one team.
type TeamService struct {
	teamStore TeamStore
}

// NewTeamService creates a new TeamService instance.
func NewTeamService(ts TeamStore) *TeamService {
	return &TeamService{teamStore: ts}
}

// CreateTeamInput is everything a user provides when founding a team.
type CreateTeamInput struct {
	Name        string
	Description string
	LeaderID    string
	LeaderName  string
	MaxMembers  int
}

// CreateTeam founds a team with the creator as its only member and leader.
// MaxMembers is clamped into [MinTeamCapacity, MaxTeamCapacity]. A user who
// is already on a team cannot found another.
func (ts *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("team name is required")
	}

	if existing, err := ts.CurrentTeam(ctx, input.LeaderID); err != nil && !errors.Is(err, ErrNoTeam) {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyMember
	}

	maxMembers := input.MaxMembers
	if maxMembers < models.MinTeamCapacity {
		maxMembers = models.MinTeamCapacity
	}
	if maxMembers > models.MaxTeamCapacity {
		maxMembers = models.MaxTeamCapacity
	}

	now := time.Now()
	team := &models.Team{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		LeaderID:    input.LeaderID,
		LeaderName:  input.LeaderName,
		Members: []models.TeamMember{{
			UserID:   input.LeaderID,
			Username: input.LeaderName,
			Role:     models.RoleLeader,
			JoinedAt: &now,
		}},
		MaxMembers: maxMembers,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	}

	if err := ts.teamStore.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("service failed to create team: %w", err)
	}
	return team, nil
}

// GetTeam retrieves a team by id.
func (ts *TeamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := ts.teamStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("service failed to get team %s: %w", id, err)
	}
	return team, nil
}

// ListTeams returns every team.
func (ts *TeamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := ts.teamStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service failed to list teams: %w", err)
	}
	return teams, nil
}

// JoinTeam adds the user as a regular member. Fails with ErrAlreadyMember if
// they are on this team already and ErrTeamFull at capacity; a user on a
// different team must leave it first.
func (ts *TeamService) JoinTeam(ctx context.Context, teamID, userID, username string) (*models.Team, error) {
	team, err := ts.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.HasMember(userID) {
		return nil, ErrAlreadyMember
	}
	if team.IsFull() {
		return nil, ErrTeamFull
	}
	if current, err := ts.CurrentTeam(ctx, userID); err != nil && !errors.Is(err, ErrNoTeam) {
		return nil, err
	} else if current != nil {
		return nil, ErrAlreadyMember
	}

	now := time.Now()
	ok, err := ts.teamStore.AppendMember(ctx, teamID, models.TeamMember{
		UserID:   userID,
		Username: username,
		Role:     models.RoleMember,
		JoinedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("service failed to join team %s: %w", teamID, err)
	}
	if !ok {
		// The guarded push lost a race; re-read to report the right reason.
		team, err = ts.GetTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if team.HasMember(userID) {
			return nil, ErrAlreadyMember
		}
		return nil, ErrTeamFull
	}

	return ts.GetTeam(ctx, teamID)
}

// LeaveTeam removes the user from the team. The leader cannot leave; they
// must delete the team or hand off leadership out-of-band first.
func (ts *TeamService) LeaveTeam(ctx context.Context, teamID, userID string) error {
	team, err := ts.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.LeaderID == userID {
		return ErrLeaderCannotLeave
	}

	if _, err := ts.teamStore.RemoveMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("service failed to remove user %s from team %s: %w", userID, teamID, err)
	}
	return nil
}

// DeleteTeam deletes the team outright. Only the leader or a master may do
// this; remaining members are simply no longer on a team.
func (ts *TeamService) DeleteTeam(ctx context.Context, teamID, actingUserID string, isMaster bool) error {
	team, err := ts.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.LeaderID != actingUserID && !isMaster {
		return ErrNotLeader
	}
	if err := ts.teamStore.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("service failed to delete team %s: %w", teamID, err)
	}
	return nil
}

// CurrentTeam returns the team the user belongs to, or ErrNoTeam. Membership
// has no direct index; the lookup scans the teams collection by member id.
func (ts *TeamService) CurrentTeam(ctx context.Context, userID string) (*models.Team, error) {
	team, err := ts.teamStore.FindByMember(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoTeam
		}
		return nil, fmt.Errorf("service failed to find team for user %s: %w", userID, err)
	}
	return team, nil
}
