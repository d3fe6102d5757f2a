package domain

import "math"

// BehaviorTag drives an enemy's AI action-selection probability.
type BehaviorTag string

const (
	BehaviorAggressive BehaviorTag = "aggressive"
	BehaviorDefensive  BehaviorTag = "defensive"
	BehaviorBalanced   BehaviorTag = "balanced"
	BehaviorSupport    BehaviorTag = "support"
	BehaviorBerserker  BehaviorTag = "berserker"
)

// UseSkillProbability is the Bernoulli parameter the AI rolls against
// before casting a skill instead of basic-attacking, keyed by behavior.
var UseSkillProbability = map[BehaviorTag]float64{
	BehaviorAggressive: 0.6,
	BehaviorDefensive:  0.4,
	BehaviorBalanced:   0.5,
	BehaviorSupport:    0.7,
	BehaviorBerserker:  0.3,
}

// DropEntry is one row of an enemy's drop table: an item awarded with the
// given probability on victory.
type DropEntry struct {
	ItemID      string  `json:"item_id"`
	Probability float64 `json:"probability"`
}

// Enemy is a non-player Character fielded by a stage, carrying the reward
// and AI-behavior data a Hero does not need.
type Enemy struct {
	Character
	Behavior   BehaviorTag `json:"behavior"`
	Difficulty int         `json:"difficulty"`
	ExpReward  int         `json:"exp_reward"`
	GoldReward int         `json:"gold_reward"`
	DropTable  []DropEntry `json:"drop_table,omitempty"`
}

// Power is the enemy's difficulty-scaled power rating.
func (e *Enemy) Power() int {
	return int(math.Floor(float64(e.Stats.TotalPower()) * (1 + 0.2*float64(e.Difficulty-1))))
}
