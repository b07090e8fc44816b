package category

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// ConfidenceThreshold is the minimum Jaro-Winkler similarity for a token to
// be offered as a suggestion.
const ConfidenceThreshold = 0.8

const osxAppCategoryPrefix = "public.app-category."

type token struct {
	text     string
	category AppCategory
}

// tokens is matched in order; the first exact match wins and ties in
// similarity keep the earlier token.
var tokens = []token{
	{"actiongame", ActionGame},
	{"actiongames", ActionGame},
	{"adventuregame", AdventureGame},
	{"adventuregames", AdventureGame},
	{"arcadegame", ArcadeGame},
	{"arcadegames", ArcadeGame},
	{"boardgame", BoardGame},
	{"boardgames", BoardGame},
	{"business", Business},
	{"cardgame", CardGame},
	{"cardgames", CardGame},
	{"casinogame", CasinoGame},
	{"casinogames", CasinoGame},
	{"developer", DeveloperTool},
	{"developertool", DeveloperTool},
	{"developertools", DeveloperTool},
	{"development", DeveloperTool},
	{"dicegame", DiceGame},
	{"dicegames", DiceGame},
	{"education", Education},
	{"educationalgame", EducationalGame},
	{"educationalgames", EducationalGame},
	{"entertainment", Entertainment},
	{"familygame", FamilyGame},
	{"familygames", FamilyGame},
	{"finance", Finance},
	{"fitness", HealthcareAndFitness},
	{"game", Game},
	{"games", Game},
	{"graphicdesign", GraphicsAndDesign},
	{"graphicsanddesign", GraphicsAndDesign},
	{"graphicsdesign", GraphicsAndDesign},
	{"healthcareandfitness", HealthcareAndFitness},
	{"healthcarefitness", HealthcareAndFitness},
	{"kidsgame", KidsGame},
	{"kidsgames", KidsGame},
	{"lifestyle", Lifestyle},
	{"logicgame", PuzzleGame},
	{"medical", Medical},
	{"medicalsoftware", Medical},
	{"music", Music},
	{"musicgame", MusicGame},
	{"musicgames", MusicGame},
	{"news", News},
	{"photography", Photography},
	{"productivity", Productivity},
	{"puzzlegame", PuzzleGame},
	{"puzzlegames", PuzzleGame},
	{"racinggame", RacingGame},
	{"racinggames", RacingGame},
	{"reference", Reference},
	{"roleplaying", RolePlayingGame},
	{"roleplayinggame", RolePlayingGame},
	{"roleplayinggames", RolePlayingGame},
	{"rpg", RolePlayingGame},
	{"simulationgame", SimulationGame},
	{"simulationgames", SimulationGame},
	{"socialnetwork", SocialNetworking},
	{"socialnetworking", SocialNetworking},
	{"sports", Sports},
	{"sportsgame", SportsGame},
	{"sportsgames", SportsGame},
	{"strategygame", StrategyGame},
	{"strategygames", StrategyGame},
	{"travel", Travel},
	{"triviagame", TriviaGame},
	{"triviagames", TriviaGame},
	{"utilities", Utility},
	{"utility", Utility},
	{"video", Video},
	{"weather", Weather},
	{"wordgame", WordGame},
	{"wordgames", WordGame},
}

// SuggestionError is returned by Classify when the input matches no token.
// It carries the closest category when one scored above the threshold.
type SuggestionError struct {
	Input      string
	suggestion AppCategory
	hasMatch   bool
}

// Suggestion returns the closest category, if any
func (e *SuggestionError) Suggestion() (AppCategory, bool) {
	return e.suggestion, e.hasMatch
}

func (e *SuggestionError) Error() string {
	if e.hasMatch {
		return fmt.Sprintf("invalid app category %q (did you mean %q?)", e.Input, e.suggestion.Canonical())
	}
	return fmt.Sprintf("invalid app category %q", e.Input)
}

// Canonicalize lowercases input, strips the macOS category prefix and
// removes spaces and hyphens. It is the form tokens are matched against.
func Canonicalize(input string) string {
	s := strings.ToLower(input)
	s = strings.TrimPrefix(s, osxAppCategoryPrefix)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// Classify maps a free-form category string to an AppCategory. On failure
// the error is a *SuggestionError.
func Classify(input string) (AppCategory, error) {
	canonical := Canonicalize(input)
	metric := metrics.NewJaroWinkler()

	bestConfidence := 0.0
	best := &SuggestionError{Input: input}
	for _, t := range tokens {
		if canonical == t.text {
			return t.category, nil
		}
		confidence := strutil.Similarity(canonical, t.text, metric)
		if confidence >= ConfidenceThreshold && confidence > bestConfidence {
			bestConfidence = confidence
			best.suggestion = t.category
			best.hasMatch = true
		}
	}
	return 0, best
}

// MustClassify is like Classify but panics on failure. It is intended for
// tables and tests.
func MustClassify(input string) AppCategory {
	c, err := Classify(input)
	if err != nil {
		panic(err)
	}
	return c
}
