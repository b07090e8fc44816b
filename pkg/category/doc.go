// Package category classifies free-form application category strings into
// the closed AppCategory vocabulary.
//
// Classification is forgiving: input is lowercased, the macOS
// "public.app-category." prefix is stripped, spaces and hyphens are removed,
// and the result is matched against a table of known tokens (including
// plurals and common synonyms such as "rpg"). When no token matches exactly,
// the closest token by Jaro-Winkler similarity is offered as a suggestion if
// it scores at least 0.8.
//
// Every AppCategory maps to a display name, a GNOME desktop entry
// Categories value and a macOS LSApplicationCategoryType value.
package category
