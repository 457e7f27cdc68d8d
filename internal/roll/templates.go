package roll

import "github.com/To3Knee/RealmQuest_Go/internal/domain"

// templates is the static notation preset catalog served to UIs. Pure data;
// the engine attaches no behavior to these ids.
var templates = []domain.RollTemplate{
	{ID: "d20", Name: "Ability Check", Notation: "d20"},
	{ID: "adv", Name: "Advantage", Notation: "2d20kh1"},
	{ID: "dis", Name: "Disadvantage", Notation: "2d20kl1"},
	{ID: "stat", Name: "Stat Roll", Notation: "4d6dl1"},
	{ID: "percentile", Name: "Percentile", Notation: "d%"},
	{ID: "attack", Name: "Attack + 5", Notation: "1d20+5"},
	{ID: "sneak", Name: "Sneak Attack", Notation: "1d20+2d6"},
	{ID: "heal", Name: "Healing Word", Notation: "1d4+3"},
}

// Templates returns the preset catalog. The returned slice is a copy so
// callers cannot mutate the catalog.
func Templates() []domain.RollTemplate {
	out := make([]domain.RollTemplate, len(templates))
	copy(out, templates)
	return out
}
