// game/service/fakes_test.go
package service

import (
	"context"
	"fmt"

	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeProfileStore is an in-memory ProfileStore that mirrors the guarded-write
// semantics of the MongoDB implementation.
type fakeProfileStore struct {
	profiles map[string]*models.Profile

	// forceCommitFail makes CommitPurchase report a failed gold guard, for
	// exercising the stock rollback path.
	forceCommitFail bool
	commitErr       error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*models.Profile)}
}

func (f *fakeProfileStore) add(p *models.Profile) {
	cp := *p
	f.profiles[p.ID] = &cp
}

func copyProfile(p *models.Profile) *models.Profile {
	cp := *p
	cp.Inventory = append([]models.InventoryItem(nil), p.Inventory...)
	return &cp
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	for _, p := range f.profiles {
		if p.UserID == profile.UserID {
			return mongo.CommandError{Code: 11000, Message: "duplicate key"}
		}
	}
	f.add(profile)
	return nil
}

func (f *fakeProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return copyProfile(p), nil
}

func (f *fakeProfileStore) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return copyProfile(p), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfileStore) ApplyUpdate(ctx context.Context, id string, update *ProfileUpdate) error {
	p, ok := f.profiles[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if update.Username != nil {
		p.Username = *update.Username
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.Experience != nil {
		p.Experience = *update.Experience
	}
	if update.Level != nil {
		p.Level = *update.Level
	}
	if update.Gold != nil {
		p.Gold = *update.Gold
	}
	if update.Health != nil {
		p.Health = *update.Health
	}
	return nil
}

func (f *fakeProfileStore) Delete(ctx context.Context, id string) error {
	delete(f.profiles, id)
	return nil
}

func (f *fakeProfileStore) applyDelta(p *models.Profile, delta RewardDelta) {
	p.Experience += delta.Experience
	p.Level = LevelForExperience(p.Experience)
	p.Gold += delta.Gold
	p.CreatureKills += delta.CreatureKills
	p.PlayerKills += delta.PlayerKills
	p.Deaths += delta.Deaths
}

func (f *fakeProfileStore) GrantReward(ctx context.Context, id string, delta RewardDelta) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	f.applyDelta(p, delta)
	return copyProfile(p), nil
}

func (f *fakeProfileStore) GrantRewardByUser(ctx context.Context, userID string, delta RewardDelta) (bool, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			f.applyDelta(p, delta)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfileStore) DeductGold(ctx context.Context, id string, amount int) (bool, error) {
	p, ok := f.profiles[id]
	if !ok || p.Gold < amount {
		return false, nil
	}
	p.Gold -= amount
	return true, nil
}

func (f *fakeProfileStore) CommitPurchase(ctx context.Context, id string, cost int, inventory []models.InventoryItem) (bool, error) {
	if f.commitErr != nil {
		return false, f.commitErr
	}
	if f.forceCommitFail {
		return false, nil
	}
	p, ok := f.profiles[id]
	if !ok || p.Gold < cost {
		return false, nil
	}
	p.Gold -= cost
	p.Inventory = append([]models.InventoryItem(nil), inventory...)
	return true, nil
}

// fakeShopStore is an in-memory ShopStore with a guarded stock decrement.
type fakeShopStore struct {
	items map[string]*models.ShopItem
}

func newFakeShopStore() *fakeShopStore {
	return &fakeShopStore{items: make(map[string]*models.ShopItem)}
}

func (f *fakeShopStore) add(item *models.ShopItem) {
	cp := *item
	f.items[item.ID] = &cp
}

func (f *fakeShopStore) GetItemByID(ctx context.Context, id string) (*models.ShopItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *item
	return &cp, nil
}

func (f *fakeShopStore) ListItems(ctx context.Context) ([]models.ShopItem, error) {
	out := make([]models.ShopItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeShopStore) CreateItem(ctx context.Context, item *models.ShopItem) error {
	f.add(item)
	return nil
}

func (f *fakeShopStore) UpdateItem(ctx context.Context, item *models.ShopItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	f.add(item)
	return nil
}

func (f *fakeShopStore) DeleteItem(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.items, id)
	return nil
}

func (f *fakeShopStore) ReserveStock(ctx context.Context, id string, quantity int) (bool, error) {
	item, ok := f.items[id]
	if !ok || item.Stock < quantity {
		return false, nil
	}
	item.Stock -= quantity
	return true, nil
}

func (f *fakeShopStore) RestoreStock(ctx context.Context, id string, quantity int) error {
	item, ok := f.items[id]
	if !ok {
		return fmt.Errorf("no such item %s", id)
	}
	item.Stock += quantity
	return nil
}

// fakeAgentStore is an in-memory AgentStore.
type fakeAgentStore struct {
	agents   map[string]*models.Agent
	recruits []models.RecruitedAgent
}

func newFakeAgentStore() *fakeAgentStore {
	return &fakeAgentStore{agents: make(map[string]*models.Agent)}
}

func (f *fakeAgentStore) GetAgentByID(ctx context.Context, id string) (*models.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *agent
	return &cp, nil
}

func (f *fakeAgentStore) ListAgents(ctx context.Context) ([]models.Agent, error) {
	out := make([]models.Agent, 0, len(f.agents))
	for _, agent := range f.agents {
		out = append(out, *agent)
	}
	return out, nil
}

func (f *fakeAgentStore) CreateAgent(ctx context.Context, agent *models.Agent) error {
	cp := *agent
	f.agents[agent.ID] = &cp
	return nil
}

func (f *fakeAgentStore) DeleteAgent(ctx context.Context, id string) error {
	if _, ok := f.agents[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.agents, id)
	return nil
}

func (f *fakeAgentStore) AddRecruit(ctx context.Context, recruit *models.RecruitedAgent) error {
	f.recruits = append(f.recruits, *recruit)
	return nil
}

func (f *fakeAgentStore) ListRecruitsByUser(ctx context.Context, userID string) ([]models.RecruitedAgent, error) {
	var out []models.RecruitedAgent
	for _, r := range f.recruits {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeMissionStore mirrors the guarded set-inserts of the MongoDB mission
// store: completion requires prior acceptance at the storage level too.
type fakeMissionStore struct {
	missions map[string]*models.Mission
}

func newFakeMissionStore() *fakeMissionStore {
	return &fakeMissionStore{missions: make(map[string]*models.Mission)}
}

func copyMission(m *models.Mission) *models.Mission {
	cp := *m
	cp.AcceptedBy = append([]string(nil), m.AcceptedBy...)
	cp.CompletedBy = append([]string(nil), m.CompletedBy...)
	return &cp
}

func (f *fakeMissionStore) add(m *models.Mission) {
	f.missions[m.ID] = copyMission(m)
}

func (f *fakeMissionStore) Create(ctx context.Context, mission *models.Mission) error {
	f.add(mission)
	return nil
}

func (f *fakeMissionStore) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	m, ok := f.missions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return copyMission(m), nil
}

func (f *fakeMissionStore) Update(ctx context.Context, mission *models.Mission) error {
	if _, ok := f.missions[mission.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	f.add(mission)
	return nil
}

func (f *fakeMissionStore) Delete(ctx context.Context, id string) error {
	delete(f.missions, id)
	return nil
}

func (f *fakeMissionStore) ListByStatus(ctx context.Context, status models.MissionStatus) ([]models.Mission, error) {
	var out []models.Mission
	for _, m := range f.missions {
		if m.Status == status {
			out = append(out, *copyMission(m))
		}
	}
	return out, nil
}

func (f *fakeMissionStore) ListByAcceptedUser(ctx context.Context, userID string) ([]models.Mission, error) {
	var out []models.Mission
	for _, m := range f.missions {
		for _, id := range m.AcceptedBy {
			if id == userID {
				out = append(out, *copyMission(m))
				break
			}
		}
	}
	return out, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f *fakeMissionStore) AddAccepted(ctx context.Context, missionID, userID string) (bool, error) {
	m, ok := f.missions[missionID]
	if !ok || contains(m.AcceptedBy, userID) {
		return false, nil
	}
	m.AcceptedBy = append(m.AcceptedBy, userID)
	return true, nil
}

func (f *fakeMissionStore) AddCompleted(ctx context.Context, missionID, userID string) (bool, error) {
	m, ok := f.missions[missionID]
	if !ok || !contains(m.AcceptedBy, userID) || contains(m.CompletedBy, userID) {
		return false, nil
	}
	m.CompletedBy = append(m.CompletedBy, userID)
	return true, nil
}

// fakeTeamStore mirrors the guarded member push of the MongoDB team store.
type fakeTeamStore struct {
	teams map[string]*models.Team
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: make(map[string]*models.Team)}
}

func copyTeam(t *models.Team) *models.Team {
	cp := *t
	cp.Members = append([]models.TeamMember(nil), t.Members...)
	return &cp
}

func (f *fakeTeamStore) Create(ctx context.Context, team *models.Team) error {
	f.teams[team.ID] = copyTeam(team)
	return nil
}

func (f *fakeTeamStore) GetByID(ctx context.Context, id string) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return copyTeam(t), nil
}

func (f *fakeTeamStore) List(ctx context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, *copyTeam(t))
	}
	return out, nil
}

func (f *fakeTeamStore) Delete(ctx context.Context, id string) error {
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamStore) AppendMember(ctx context.Context, teamID string, member models.TeamMember) (bool, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return false, nil
	}
	if t.HasMember(member.UserID) || len(t.Members) >= t.MaxMembers {
		return false, nil
	}
	t.Members = append(t.Members, member)
	return true, nil
}

func (f *fakeTeamStore) RemoveMember(ctx context.Context, teamID, userID string) (bool, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return false, nil
	}
	for i, m := range t.Members {
		if m.UserID == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamStore) FindByMember(ctx context.Context, userID string) (*models.Team, error) {
	for _, t := range f.teams {
		if t.HasMember(userID) {
			return copyTeam(t), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}
