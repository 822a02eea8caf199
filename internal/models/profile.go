package models

// CompanionKind identifies the avatar that evolves with the streak.
type CompanionKind string

const (
	CompanionPlant  CompanionKind = "plant"
	CompanionCat    CompanionKind = "cat"
	CompanionDog    CompanionKind = "dog"
	CompanionBird   CompanionKind = "bird"
	CompanionDragon CompanionKind = "dragon"
	CompanionFlame  CompanionKind = "flame"
)

// CompanionKinds lists the selectable companions in display order.
var CompanionKinds = []CompanionKind{
	CompanionPlant,
	CompanionCat,
	CompanionDog,
	CompanionBird,
	CompanionDragon,
	CompanionFlame,
}

// Valid reports whether k is a known companion kind.
func (k CompanionKind) Valid() bool {
	for _, known := range CompanionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// DefaultName returns the name used when the user has not named the companion.
func (k CompanionKind) DefaultName() string {
	switch k {
	case CompanionPlant:
		return "your plant"
	case CompanionCat:
		return "your cat"
	case CompanionDog:
		return "your dog"
	case CompanionBird:
		return "your bird"
	case CompanionDragon:
		return "your dragon"
	case CompanionFlame:
		return "your flame"
	default:
		return "your companion"
	}
}

// AddictionKind identifies the behavior being tracked.
type AddictionKind string

const (
	AddictionSocialMedia       AddictionKind = "social-media"
	AddictionGaming            AddictionKind = "gaming"
	AddictionShopping          AddictionKind = "shopping"
	AddictionPornography       AddictionKind = "pornography"
	AddictionProcrastination   AddictionKind = "procrastination"
	AddictionGambling          AddictionKind = "gambling"
	AddictionSmoking           AddictionKind = "smoking"
	AddictionAlcohol           AddictionKind = "alcohol"
	AddictionCannabis          AddictionKind = "cannabis"
	AddictionDrugs             AddictionKind = "drugs"
	AddictionBingeEating       AddictionKind = "binge-eating"
	AddictionSugar             AddictionKind = "sugar"
	AddictionCaffeine          AddictionKind = "caffeine"
	AddictionSkinPicking       AddictionKind = "skin-picking"
	AddictionNailBiting        AddictionKind = "nail-biting"
	AddictionToxicRelationship AddictionKind = "toxic-relationship"
	AddictionCustom            AddictionKind = "custom"
)

var addictionNames = map[AddictionKind]string{
	AddictionSocialMedia:       "Social Media",
	AddictionGaming:            "Gaming",
	AddictionShopping:          "Shopping",
	AddictionPornography:       "Pornography",
	AddictionProcrastination:   "Procrastination",
	AddictionGambling:          "Gambling",
	AddictionSmoking:           "Smoking",
	AddictionAlcohol:           "Alcohol",
	AddictionCannabis:          "Cannabis",
	AddictionDrugs:             "Drugs",
	AddictionBingeEating:       "Binge Eating",
	AddictionSugar:             "Sugar",
	AddictionCaffeine:          "Caffeine",
	AddictionSkinPicking:       "Skin Picking",
	AddictionNailBiting:        "Nail Biting",
	AddictionToxicRelationship: "Toxic Relationship",
}

// AddictionKinds lists the predefined kinds (custom excluded) in display order.
var AddictionKinds = []AddictionKind{
	AddictionSocialMedia,
	AddictionGaming,
	AddictionShopping,
	AddictionPornography,
	AddictionProcrastination,
	AddictionGambling,
	AddictionSmoking,
	AddictionAlcohol,
	AddictionCannabis,
	AddictionDrugs,
	AddictionBingeEating,
	AddictionSugar,
	AddictionCaffeine,
	AddictionSkinPicking,
	AddictionNailBiting,
	AddictionToxicRelationship,
}

// Valid reports whether k is a predefined kind or custom.
func (k AddictionKind) Valid() bool {
	if k == AddictionCustom {
		return true
	}
	_, ok := addictionNames[k]
	return ok
}

// Profile is the user's onboarding choice set.
type Profile struct {
	CompanionKind   CompanionKind `json:"companionType"`
	CompanionName   string        `json:"companionName"`
	AddictionKind   AddictionKind `json:"addictionType"`
	AddictionCustom string        `json:"addictionCustom,omitempty"` // free text, only for custom
}

// DisplayCompanionName falls back to the kind's default name when unset.
func (p Profile) DisplayCompanionName() string {
	if p.CompanionName != "" {
		return p.CompanionName
	}
	return p.CompanionKind.DefaultName()
}

// AddictionName resolves the human-readable name of the tracked behavior.
func (p Profile) AddictionName() string {
	if p.AddictionKind == AddictionCustom {
		if p.AddictionCustom == "" {
			return "this addiction"
		}
		return p.AddictionCustom
	}
	if name, ok := addictionNames[p.AddictionKind]; ok {
		return name
	}
	return string(p.AddictionKind)
}
