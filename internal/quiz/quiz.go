// Package quiz defines the hand-off contract between the dungeon and the
// question-answering subsystem, plus a small arithmetic drill used by the
// terminal front end.
package quiz

// ModuleID names the quiz module that handles a course topic.
type ModuleID string

const (
	ModuleWebDesign ModuleID = "quiz-webdesign"
	ModulePython    ModuleID = "quiz-python"
	ModuleJava      ModuleID = "quiz-java"
	ModuleC         ModuleID = "quiz-c"
	ModuleCPP       ModuleID = "quiz-cpp"
	ModuleCSharp    ModuleID = "quiz-csharp"
)

// DefaultTopic is used when a run starts without a topic.
const DefaultTopic = "webdesign"

var modules = map[string]ModuleID{
	"webdesign": ModuleWebDesign,
	"python":    ModulePython,
	"java":      ModuleJava,
	"C":         ModuleC,
	"C++":       ModuleCPP,
	"C#":        ModuleCSharp,
}

// ModuleFor maps a course topic to its quiz module. Unknown topics fall back
// to the web-design module. Lookup is case-sensitive: "C" and "c" differ.
func ModuleFor(topic string) ModuleID {
	if id, ok := modules[topic]; ok {
		return id
	}
	return ModuleWebDesign
}

// Topics lists the known topic keys.
func Topics() []string {
	return []string{"webdesign", "python", "java", "C", "C++", "C#"}
}

const (
	bossMaxHP          = 500
	normalMaxHP        = 100
	bossQuestionCount  = 20
	normalQuestionCount = 10
)

// EncounterConfig is handed to the quiz module when an encounter starts.
type EncounterConfig struct {
	SpriteKey     string
	MaxHP         int
	Label         string
	QuestionCount int
	Boss          bool

	// One-shot modifiers consumed from the player's buffs.
	DoubleDamage  bool
	DoubleRewards bool
}

// NewEncounterConfig derives HP and question count from the boss flag.
func NewEncounterConfig(spriteKey, label string, boss bool) EncounterConfig {
	cfg := EncounterConfig{
		SpriteKey:     spriteKey,
		MaxHP:         normalMaxHP,
		Label:         label,
		QuestionCount: normalQuestionCount,
		Boss:          boss,
	}
	if boss {
		cfg.MaxHP = bossMaxHP
		cfg.QuestionCount = bossQuestionCount
	}
	return cfg
}

// Result is read back from the quiz module when the dungeon resumes.
type Result struct {
	EnemyDefeated  bool
	Score          int
	CorrectAnswers int
	TotalQuestions int
	ComboScore     int
}

// WrongAnswers is the number of questions answered incorrectly.
func (r Result) WrongAnswers() int {
	return max(r.TotalQuestions-r.CorrectAnswers, 0)
}
