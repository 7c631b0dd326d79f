package chakra

import (
	"errors"
	"fmt"
	"strings"
)

// ID identifies one of the seven energy centers.
type ID string

const (
	Root     ID = "root"
	Sacral   ID = "sacral"
	Solar    ID = "solar"
	Heart    ID = "heart"
	Throat   ID = "throat"
	ThirdEye ID = "third-eye"
	Crown    ID = "crown"
)

// ErrUnknownCenter is returned by Parse for input that names no center.
var ErrUnknownCenter = errors.New("unknown energy center")

// All returns every center id in declaration order (root to crown).
func All() []ID {
	return []ID{Root, Sacral, Solar, Heart, Throat, ThirdEye, Crown}
}

// Valid reports whether id is one of the seven declared centers.
func (id ID) Valid() bool {
	_, ok := index(id)
	return ok
}

func (id ID) String() string {
	return string(id)
}

// Center is an immutable reference row describing one energy center.
type Center struct {
	ID               ID
	Number           int
	Name             string
	Sanskrit         string
	Frequency        float64 // Hz
	Color            string  // hex, for presentation
	Element          string
	Location         string
	Affirmation      string
	Benefits         []string
	EmotionalAspects []string
	BodyParts        []string
}

var centers = [...]Center{
	{
		ID: Root, Number: 1, Name: "Root", Sanskrit: "Muladhara",
		Frequency: 396, Color: "#E53935", Element: "Earth",
		Location:    "Base of the spine",
		Affirmation: "I am safe, grounded and supported.",
		Benefits:    []string{"Grounding", "Security", "Physical vitality"},
		EmotionalAspects: []string{
			"Safety", "Survival", "Trust in the world",
		},
		BodyParts: []string{"Legs", "Feet", "Spine", "Adrenal glands"},
	},
	{
		ID: Sacral, Number: 2, Name: "Sacral", Sanskrit: "Svadhisthana",
		Frequency: 417, Color: "#FB8C00", Element: "Water",
		Location:    "Lower abdomen",
		Affirmation: "I embrace pleasure and let my creativity flow.",
		Benefits:    []string{"Creativity", "Emotional flow", "Healthy pleasure"},
		EmotionalAspects: []string{
			"Pleasure", "Sensuality", "Emotional expression",
		},
		BodyParts: []string{"Reproductive organs", "Kidneys", "Bladder", "Hips"},
	},
	{
		ID: Solar, Number: 3, Name: "Solar Plexus", Sanskrit: "Manipura",
		Frequency: 528, Color: "#FDD835", Element: "Fire",
		Location:    "Upper abdomen",
		Affirmation: "I stand in my power and act with confidence.",
		Benefits:    []string{"Confidence", "Willpower", "Healthy digestion"},
		EmotionalAspects: []string{
			"Self-esteem", "Personal power", "Motivation",
		},
		BodyParts: []string{"Stomach", "Liver", "Pancreas", "Gut"},
	},
	{
		ID: Heart, Number: 4, Name: "Heart", Sanskrit: "Anahata",
		Frequency: 639, Color: "#43A047", Element: "Air",
		Location:    "Center of the chest",
		Affirmation: "I give and receive love freely.",
		Benefits:    []string{"Compassion", "Connection", "Emotional healing"},
		EmotionalAspects: []string{
			"Love", "Forgiveness", "Empathy",
		},
		BodyParts: []string{"Heart", "Lungs", "Arms", "Thymus"},
	},
	{
		ID: Throat, Number: 5, Name: "Throat", Sanskrit: "Vishuddha",
		Frequency: 741, Color: "#1E88E5", Element: "Ether",
		Location:    "Throat",
		Affirmation: "I speak my truth with clarity and kindness.",
		Benefits:    []string{"Clear communication", "Self-expression", "Honesty"},
		EmotionalAspects: []string{
			"Truth", "Expression", "Listening",
		},
		BodyParts: []string{"Throat", "Thyroid", "Neck", "Mouth"},
	},
	{
		ID: ThirdEye, Number: 6, Name: "Third Eye", Sanskrit: "Ajna",
		Frequency: 852, Color: "#3949AB", Element: "Light",
		Location:    "Between the eyebrows",
		Affirmation: "I trust my intuition and see clearly.",
		Benefits:    []string{"Intuition", "Focus", "Insight"},
		EmotionalAspects: []string{
			"Intuition", "Imagination", "Perception",
		},
		BodyParts: []string{"Eyes", "Brain", "Pituitary gland"},
	},
	{
		ID: Crown, Number: 7, Name: "Crown", Sanskrit: "Sahasrara",
		Frequency: 963, Color: "#8E24AA", Element: "Thought",
		Location:    "Top of the head",
		Affirmation: "I am connected to something greater than myself.",
		Benefits:    []string{"Spiritual connection", "Presence", "Inner peace"},
		EmotionalAspects: []string{
			"Awareness", "Purpose", "Transcendence",
		},
		BodyParts: []string{"Cerebral cortex", "Nervous system", "Pineal gland"},
	},
}

// Centers returns a copy of the reference table in declaration order.
func Centers() []Center {
	out := make([]Center, len(centers))
	copy(out, centers[:])
	return out
}

// Lookup returns the reference row for id.
func Lookup(id ID) (Center, bool) {
	i, ok := index(id)
	if !ok {
		return Center{}, false
	}
	return centers[i], true
}

// MustLookup returns the row for id, or the heart row when id is unknown.
func MustLookup(id ID) Center {
	if c, ok := Lookup(id); ok {
		return c
	}
	return centers[3]
}

// Frequency returns the resonance frequency for id. Unknown ids resolve to
// the heart frequency.
func Frequency(id ID) float64 {
	return MustLookup(id).Frequency
}

// Parse converts user input into an ID.
func Parse(s string) (ID, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "third_eye", "thirdeye", "third eye", "ajna":
		return ThirdEye, nil
	case "solar-plexus", "solar_plexus", "solar plexus":
		return Solar, nil
	}
	for _, c := range centers {
		if string(c.ID) == norm || strings.ToLower(c.Sanskrit) == norm {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCenter, s)
}

// Next returns the center after id, wrapping crown back to root.
func Next(id ID) ID {
	i, ok := index(id)
	if !ok {
		return Heart
	}
	return centers[(i+1)%len(centers)].ID
}

// Prev returns the center before id, wrapping root around to crown.
func Prev(id ID) ID {
	i, ok := index(id)
	if !ok {
		return Heart
	}
	return centers[(i+len(centers)-1)%len(centers)].ID
}

func index(id ID) (int, bool) {
	switch id {
	case Root:
		return 0, true
	case Sacral:
		return 1, true
	case Solar:
		return 2, true
	case Heart:
		return 3, true
	case Throat:
		return 4, true
	case ThirdEye:
		return 5, true
	case Crown:
		return 6, true
	default:
		return 0, false
	}
}
