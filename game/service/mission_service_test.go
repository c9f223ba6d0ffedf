// game/service/mission_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ordemrpg/go-services/shared/models"
)

func missionFixture() (*MissionService, *fakeMissionStore, *fakeProfileStore) {
	missions := newFakeMissionStore()
	profiles := newFakeProfileStore()
	return NewMissionService(missions, profiles), missions, profiles
}

func seedMission(missions *fakeMissionStore, reward models.MissionReward) *models.Mission {
	m := &models.Mission{
		ID:          "mission-1",
		Title:       "Limpar o Casarão",
		Difficulty:  models.DifficultyMedium,
		Status:      models.MissionAvailable,
		Reward:      reward,
		AcceptedBy:  []string{},
		CompletedBy: []string{},
		CreatedBy:   "master-1",
	}
	missions.add(m)
	return m
}

func TestAcceptMission(t *testing.T) {
	svc, missions, _ := missionFixture()
	seedMission(missions, models.MissionReward{})

	if err := svc.Accept(context.Background(), "mission-1", "user-1"); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	m, _ := missions.GetByID(context.Background(), "mission-1")
	if !contains(m.AcceptedBy, "user-1") {
		t.Errorf("accepted_by = %v, want user-1 present", m.AcceptedBy)
	}
}

func TestAcceptMissionTwice(t *testing.T) {
	svc, missions, _ := missionFixture()
	seedMission(missions, models.MissionReward{})

	if err := svc.Accept(context.Background(), "mission-1", "user-1"); err != nil {
		t.Fatalf("first Accept returned error: %v", err)
	}
	if err := svc.Accept(context.Background(), "mission-1", "user-1"); !errors.Is(err, ErrAlreadyAccepted) {
		t.Fatalf("second Accept error = %v, want ErrAlreadyAccepted", err)
	}

	m, _ := missions.GetByID(context.Background(), "mission-1")
	if len(m.AcceptedBy) != 1 {
		t.Errorf("accepted_by = %v, want exactly one entry", m.AcceptedBy)
	}
}

func TestCompleteRequiresAcceptance(t *testing.T) {
	svc, missions, _ := missionFixture()
	seedMission(missions, models.MissionReward{})

	if err := svc.Complete(context.Background(), "mission-1", "user-1"); !errors.Is(err, ErrNotAccepted) {
		t.Fatalf("Complete before Accept: error = %v, want ErrNotAccepted", err)
	}
}

func TestCompleteGrantsRewardOnce(t *testing.T) {
	svc, missions, profiles := missionFixture()
	seedMission(missions, models.MissionReward{Experience: 150, Gold: 40})
	profiles.add(&models.Profile{ID: "profile-1", UserID: "user-1", Username: "Arlindo"})

	if err := svc.Accept(context.Background(), "mission-1", "user-1"); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if err := svc.Complete(context.Background(), "mission-1", "user-1"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	profile, _ := profiles.GetByUserID(context.Background(), "user-1")
	if profile.Experience != 150 || profile.Gold != 40 {
		t.Errorf("experience/gold after completion = %d/%d, want 150/40", profile.Experience, profile.Gold)
	}
	if profile.Level != 2 {
		t.Errorf("level after 150 experience = %d, want 2", profile.Level)
	}

	// Completing again must not pay twice.
	if err := svc.Complete(context.Background(), "mission-1", "user-1"); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second Complete error = %v, want ErrAlreadyCompleted", err)
	}
	profile, _ = profiles.GetByUserID(context.Background(), "user-1")
	if profile.Experience != 150 || profile.Gold != 40 {
		t.Errorf("double completion changed rewards: experience/gold = %d/%d", profile.Experience, profile.Gold)
	}
}

func TestCompleteWithoutProfileStillCompletes(t *testing.T) {
	svc, missions, _ := missionFixture()
	seedMission(missions, models.MissionReward{Experience: 100})

	if err := svc.Accept(context.Background(), "mission-1", "user-ghost"); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if err := svc.Complete(context.Background(), "mission-1", "user-ghost"); err != nil {
		t.Fatalf("Complete for profile-less user returned error: %v", err)
	}

	m, _ := missions.GetByID(context.Background(), "mission-1")
	if !contains(m.CompletedBy, "user-ghost") {
		t.Errorf("completed_by = %v, want user-ghost present", m.CompletedBy)
	}
}

func TestMissionLifecycleIsPerUser(t *testing.T) {
	svc, missions, _ := missionFixture()
	seedMission(missions, models.MissionReward{})

	if err := svc.Accept(context.Background(), "mission-1", "user-1"); err != nil {
		t.Fatalf("Accept user-1 returned error: %v", err)
	}
	if err := svc.Accept(context.Background(), "mission-1", "user-2"); err != nil {
		t.Fatalf("Accept user-2 returned error: %v", err)
	}
	if err := svc.Complete(context.Background(), "mission-1", "user-1"); err != nil {
		t.Fatalf("Complete user-1 returned error: %v", err)
	}

	// user-2's progress is independent of user-1's completion.
	m, _ := missions.GetByID(context.Background(), "mission-1")
	if contains(m.CompletedBy, "user-2") {
		t.Errorf("user-2 marked completed without completing")
	}
	if err := svc.Complete(context.Background(), "mission-1", "user-2"); err != nil {
		t.Fatalf("Complete user-2 returned error: %v", err)
	}
}

func TestUpdateMissionPreservesMembershipSets(t *testing.T) {
	svc, missions, _ := missionFixture()
	seedMission(missions, models.MissionReward{})
	if err := svc.Accept(context.Background(), "mission-1", "user-1"); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	edit := &models.Mission{
		ID:         "mission-1",
		Title:      "Limpar o Casarão (revisado)",
		Difficulty: models.DifficultyHard,
		Status:     models.MissionAvailable,
		// An edit payload never carries the membership sets.
		AcceptedBy:  nil,
		CompletedBy: nil,
	}
	if err := svc.UpdateMission(context.Background(), edit, "master-1", true); err != nil {
		t.Fatalf("UpdateMission returned error: %v", err)
	}

	m, _ := missions.GetByID(context.Background(), "mission-1")
	if m.Title != "Limpar o Casarão (revisado)" {
		t.Errorf("title = %q, want edited title", m.Title)
	}
	if !contains(m.AcceptedBy, "user-1") {
		t.Errorf("edit dropped accepted_by: %v", m.AcceptedBy)
	}
}

func TestUpdateMissionRequiresCreatorOrMaster(t *testing.T) {
	svc, missions, _ := missionFixture()
	seedMission(missions, models.MissionReward{})

	edit := &models.Mission{ID: "mission-1", Title: "Hijacked"}
	if err := svc.UpdateMission(context.Background(), edit, "user-1", false); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("UpdateMission by stranger: error = %v, want ErrPermissionDenied", err)
	}
	if err := svc.DeleteMission(context.Background(), "mission-1", "user-1", false); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("DeleteMission by stranger: error = %v, want ErrPermissionDenied", err)
	}

	// The creator may edit without the master role.
	edit.Title = "Limpar o Casarão II"
	if err := svc.UpdateMission(context.Background(), edit, "master-1", false); err != nil {
		t.Fatalf("UpdateMission by creator returned error: %v", err)
	}
}

func TestCreateMissionStartsAvailable(t *testing.T) {
	svc, _, _ := missionFixture()

	mission, err := svc.CreateMission(context.Background(), CreateMissionInput{
		Title:      "Vigiar o Porto",
		Difficulty: models.DifficultyEasy,
		Reward:     models.MissionReward{Experience: 50},
		CreatedBy:  "master-1",
	})
	if err != nil {
		t.Fatalf("CreateMission returned error: %v", err)
	}
	if mission.Status != models.MissionAvailable {
		t.Errorf("status = %q, want available", mission.Status)
	}
	if mission.AcceptedBy == nil || mission.CompletedBy == nil {
		t.Errorf("membership sets should be empty non-nil, got %v / %v", mission.AcceptedBy, mission.CompletedBy)
	}
}
