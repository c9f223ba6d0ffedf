package models

import "time"

// TeamRole distinguishes the single leader from regular members.
type TeamRole string

const (
	RoleLeader TeamRole = "leader"
	RoleMember TeamRole = "member"
)

// Team capacity bounds. MaxMembers is clamped into this range at creation.
const (
	MinTeamCapacity = 2
	MaxTeamCapacity = 20
)

// TeamMember is one entry in a team's ordered member list.
type TeamMember struct {
	UserID   string     `bson:"user_id" json:"userId"`
	Username string     `bson:"username" json:"username"`
	Role     TeamRole   `bson:"role" json:"role"`
	JoinedAt *time.Time `bson:"joined_at,omitempty" json:"joinedAt,omitempty"`
}

// Team is a bounded-capacity group of users. Invariants: exactly one member
// has RoleLeader and its UserID equals LeaderID; len(Members) <= MaxMembers.
type Team struct {
	ID          string       `bson:"_id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	LeaderID    string       `bson:"leader_id" json:"leaderId"`
	LeaderName  string       `bson:"leader_name" json:"leaderName"`
	Members     []TeamMember `bson:"members" json:"members"`
	MaxMembers  int          `bson:"max_members" json:"maxMembers"`
	CreatedAt   *time.Time   `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// HasMember reports whether the given user is on the team.
func (t *Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the team is at capacity.
func (t *Team) IsFull() bool {
	return len(t.Members) >= t.MaxMembers
}
