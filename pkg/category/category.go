package category

import "fmt"

// AppCategory is one member of the closed set of application categories
type AppCategory int

const (
	Business AppCategory = iota
	DeveloperTool
	Education
	Entertainment
	Finance
	Game
	ActionGame
	AdventureGame
	ArcadeGame
	BoardGame
	CardGame
	CasinoGame
	DiceGame
	EducationalGame
	FamilyGame
	KidsGame
	MusicGame
	PuzzleGame
	RacingGame
	RolePlayingGame
	SimulationGame
	SportsGame
	StrategyGame
	TriviaGame
	WordGame
	GraphicsAndDesign
	HealthcareAndFitness
	Lifestyle
	Medical
	Music
	News
	Photography
	Productivity
	Reference
	SocialNetworking
	Sports
	Travel
	Utility
	Video
	Weather

	categoryCount
)

type categoryInfo struct {
	canonical string
	gnome     string
	osx       string
}

var infos = [categoryCount]categoryInfo{
	Business:             {"Business", "Office;", "public.app-category.business"},
	DeveloperTool:        {"Developer Tool", "Development;", "public.app-category.developer-tools"},
	Education:            {"Education", "Education;", "public.app-category.education"},
	Entertainment:        {"Entertainment", "Network;", "public.app-category.entertainment"},
	Finance:              {"Finance", "Office;Finance;", "public.app-category.finance"},
	Game:                 {"Game", "Game;", "public.app-category.games"},
	ActionGame:           {"Action Game", "Game;ActionGame;", "public.app-category.action-games"},
	AdventureGame:        {"Adventure Game", "Game;AdventureGame;", "public.app-category.adventure-games"},
	ArcadeGame:           {"Arcade Game", "Game;ArcadeGame;", "public.app-category.arcade-games"},
	BoardGame:            {"Board Game", "Game;BoardGame;", "public.app-category.board-games"},
	CardGame:             {"Card Game", "Game;CardGame;", "public.app-category.card-games"},
	CasinoGame:           {"Casino Game", "Game;", "public.app-category.casino-games"},
	DiceGame:             {"Dice Game", "Game;", "public.app-category.dice-games"},
	EducationalGame:      {"Educational Game", "Game;Education;", "public.app-category.educational-games"},
	FamilyGame:           {"Family Game", "Game;", "public.app-category.family-games"},
	KidsGame:             {"Kids Game", "Game;KidsGame;", "public.app-category.kids-games"},
	MusicGame:            {"Music Game", "Game;", "public.app-category.music-games"},
	PuzzleGame:           {"Puzzle Game", "Game;LogicGame;", "public.app-category.puzzle-games"},
	RacingGame:           {"Racing Game", "Game;", "public.app-category.racing-games"},
	RolePlayingGame:      {"Role-Playing Game", "Game;RolePlaying;", "public.app-category.role-playing-games"},
	SimulationGame:       {"Simulation Game", "Game;Simulation;", "public.app-category.simulation-games"},
	SportsGame:           {"Sports Game", "Game;SportsGame;", "public.app-category.sports-games"},
	StrategyGame:         {"Strategy Game", "Game;StrategyGame;", "public.app-category.strategy-games"},
	TriviaGame:           {"Trivia Game", "Game;", "public.app-category.trivia-games"},
	WordGame:             {"Word Game", "Game;", "public.app-category.word-games"},
	GraphicsAndDesign:    {"Graphics and Design", "Graphics;", "public.app-category.graphics-design"},
	HealthcareAndFitness: {"Healthcare and Fitness", "Science;", "public.app-category.healthcare-fitness"},
	Lifestyle:            {"Lifestyle", "Education;", "public.app-category.lifestyle"},
	Medical:              {"Medical", "Science;MedicalSoftware;", "public.app-category.medical"},
	Music:                {"Music", "AudioVideo;Audio;Music;", "public.app-category.music"},
	News:                 {"News", "Network;News;", "public.app-category.news"},
	Photography:          {"Photography", "Graphics;Photography;", "public.app-category.photography"},
	Productivity:         {"Productivity", "Office;", "public.app-category.productivity"},
	Reference:            {"Reference", "Education;", "public.app-category.reference"},
	SocialNetworking:     {"Social Networking", "Network;", "public.app-category.social-networking"},
	Sports:               {"Sports", "Education;Sports;", "public.app-category.sports"},
	Travel:               {"Travel", "Education;", "public.app-category.travel"},
	Utility:              {"Utility", "Utility;", "public.app-category.utilities"},
	Video:                {"Video", "AudioVideo;Video;", "public.app-category.video"},
	Weather:              {"Weather", "Science;", "public.app-category.weather"},
}

// All returns every category in declaration order
func All() []AppCategory {
	all := make([]AppCategory, 0, categoryCount)
	for c := AppCategory(0); c < categoryCount; c++ {
		all = append(all, c)
	}
	return all
}

// Valid reports whether c is a member of the closed set
func (c AppCategory) Valid() bool {
	return c >= 0 && c < categoryCount
}

// Canonical returns the display name recommended in project metadata, e.g.
// "Developer Tool". It is also the text used in "did you mean" suggestions.
func (c AppCategory) Canonical() string {
	if !c.Valid() {
		return ""
	}
	return infos[c].canonical
}

// GnomeDesktopCategories returns the closest set of GNOME registered
// categories, formatted for the Categories key of a .desktop file.
func (c AppCategory) GnomeDesktopCategories() string {
	if !c.Valid() {
		return ""
	}
	return infos[c].gnome
}

// OSXApplicationCategoryType returns the closest LSApplicationCategoryType
// value.
func (c AppCategory) OSXApplicationCategoryType() string {
	if !c.Valid() {
		return ""
	}
	return infos[c].osx
}

// String implements fmt.Stringer
func (c AppCategory) String() string {
	if !c.Valid() {
		return fmt.Sprintf("AppCategory(%d)", int(c))
	}
	return infos[c].canonical
}

// MarshalText renders the canonical display name
func (c AppCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid app category %d", int(c))
	}
	return []byte(c.Canonical()), nil
}

// UnmarshalText classifies text, so metadata decoders (TOML, YAML and
// mapstructure's text hook) reject unknown categories with a suggestion.
func (c *AppCategory) UnmarshalText(text []byte) error {
	parsed, err := Classify(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
