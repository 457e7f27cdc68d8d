package domain

// Visibility values for roll events
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Roll type values recognized by the engine. Clients may send arbitrary
// strings; these are only the ones the engine itself assigns.
const (
	RollTypeCustom    = "custom"
	RollTypeStatBlock = "stat_block"
)

// DefaultCampaignID is used when no campaign has ever been activated.
const DefaultCampaignID = "default"

// KeepDrop identifies a keep/drop selection rule on a dice term.
type KeepDrop string

const (
	KeepHighest KeepDrop = "kh"
	KeepLowest  KeepDrop = "kl"
	DropHighest KeepDrop = "dh"
	DropLowest  KeepDrop = "dl"
)

// DiceTerm is one signed group of dice within a parsed expression.
// Count, Sides, KeepDrop and KeepDropN are fixed at parse time; Rolls,
// Kept, Dropped and Subtotal are attached by evaluation.
type DiceTerm struct {
	Sign      int      `json:"sign"`
	Count     int      `json:"count"`
	Sides     int      `json:"sides"`
	KeepDrop  KeepDrop `json:"keep_drop,omitempty"`
	KeepDropN int      `json:"keep_drop_n,omitempty"`

	Rolls    []int `json:"rolls,omitempty"`
	Kept     []int `json:"kept,omitempty"`
	Dropped  []int `json:"dropped,omitempty"`
	Subtotal int   `json:"subtotal"`
}

// ExpressionDetail is the full evaluation result of one notation string.
type ExpressionDetail struct {
	Notation     string     `json:"notation"`
	Constants    int        `json:"constants"`
	Terms        []DiceTerm `json:"terms"`
	Total        int        `json:"total"`
	IsPercentile bool       `json:"is_percentile"`
}

// RollEvent is the persisted, immutable ledger entry for one roll.
// RollID, CreatedAtEpoch and CreatedAt are assigned server-side at insert
// time and never client-supplied.
type RollEvent struct {
	RollID         string  `json:"roll_id"`
	CampaignID     string  `json:"campaign_id"`
	CreatedAtEpoch float64 `json:"created_at_epoch"`
	CreatedAt      string  `json:"created_at"`

	CharacterID    string `json:"character_id,omitempty"`
	CharacterName  string `json:"character_name,omitempty"`
	OwnerDiscordID string `json:"owner_discord_id,omitempty"`
	PlayerName     string `json:"player_name,omitempty"`

	// Representative single dice group, derived from the first dice term
	// when notation is used. Kept for simple consumers.
	DiceCount int   `json:"dice_count"`
	Sides     int   `json:"sides"`
	Rolls     []int `json:"rolls"`

	Modifier  int    `json:"modifier"`
	Bonus     int    `json:"bonus"`
	Attribute string `json:"attribute,omitempty"`

	GrandTotal int `json:"grand_total"`

	RollType   string                 `json:"roll_type,omitempty"`
	Notation   string                 `json:"notation,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Visibility string                 `json:"visibility"`

	// Rich breakdown, present only when notation parsing was used.
	Expression *ExpressionDetail `json:"expression,omitempty"`
	Kept       []int             `json:"kept,omitempty"`
	Dropped    []int             `json:"dropped,omitempty"`
}

// RollTemplate is a named notation preset served by the template catalog.
type RollTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Notation string `json:"notation"`
}

// Watermark is the feed consumer's persisted high-water mark: the newest
// roll event it has already forwarded downstream.
type Watermark struct {
	Consumer  string  `json:"consumer"`
	Epoch     float64 `json:"epoch"`
	RollID    string  `json:"roll_id,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}
