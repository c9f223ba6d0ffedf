// game/service/progression.go
package service

// ExperiencePerLevel is the fixed width of every level band. Experience is a
// running total that is never reset on level-up; level is always a pure
// function of total experience.
const ExperiencePerLevel = 100

// Character creation pool constants.
const (
	BaseHealth        = 20
	BaseMana          = 10
	PoolPerAttribute  = 2
	AttributeBaseline = 10
)

// LevelForExperience returns the level for a total experience value:
// floor(total/100) + 1. Negative totals floor at level 1.
func LevelForExperience(totalExperience int) int {
	if totalExperience < 0 {
		return 1
	}
	return totalExperience/ExperiencePerLevel + 1
}

// LevelAfterGain returns the level after adding gained experience to the
// current total. A zero gain still recomputes from the running total, so the
// stored level converges on the formula for any profile that went through an
// experience-granting path.
func LevelAfterGain(currentExperience, gainedExperience int) int {
	return LevelForExperience(currentExperience + gainedExperience)
}

// AttributePreview returns the health and mana pools seeded at character
// creation from constitution and intelligence. The pools are never recomputed
// afterward; gameplay mutates them independently of the attributes.
func AttributePreview(constitution, intelligence int) (baseHealth, baseMana int) {
	baseHealth = BaseHealth + (constitution-AttributeBaseline)*PoolPerAttribute
	baseMana = BaseMana + (intelligence-AttributeBaseline)*PoolPerAttribute
	return baseHealth, baseMana
}
