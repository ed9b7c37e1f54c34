package mobgen

// Behaviour describes how a mob moves once the map is loaded.
type Behaviour struct {
	Type      string  `json:"type"`
	Direction string  `json:"direction"`
	Speed     float64 `json:"speed"`
}

// Mob is one synthesized non-player entity.
type Mob struct {
	XStart    int       `json:"x_start"`
	YStart    int       `json:"y_start"`
	Asset     string    `json:"asset"`
	IsPlayer  bool      `json:"is_player"`
	Behaviour Behaviour `json:"behaviour"`
}

// AssetClass couples an asset tag with the walker speed that tag implies.
// The tag's numeric suffixes belong to the tileset and are treated as opaque.
type AssetClass struct {
	Tag   string  `yaml:"tag" json:"tag"`
	Speed float64 `yaml:"speed" json:"speed"`
}

// DefaultCatalog returns the demo tileset classes: imps walk a bit faster
// than ghosts.
func DefaultCatalog() []AssetClass {
	return []AssetClass{
		{Tag: "imp_20_0", Speed: 0.5},
		{Tag: "ghost_30_0", Speed: 0.42},
	}
}
